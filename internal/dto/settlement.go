package dto

import "github.com/novira-app/novira-backend/internal/core/domain"

// SettleBatchRequest lists the splits a simplified payment (or "settle all")
// should discharge. An empty list is accepted and treated as a no-op.
type SettleBatchRequest struct {
	SplitIDs []string `json:"splitIDs" binding:"dive,required"`
}

// FailedSettlementResponse reports one split that could not be settled.
type FailedSettlementResponse struct {
	SplitID string `json:"splitID"`
	Error   string `json:"error"`
}

// SettleBatchResponse reports the per-split outcome so the caller can retry
// only the failed subset.
type SettleBatchResponse struct {
	Succeeded []string                   `json:"succeeded"`
	Failed    []FailedSettlementResponse `json:"failed"`
}

// ToSettleBatchResponse converts a domain.BatchSettlementResult to its DTO.
func ToSettleBatchResponse(result *domain.BatchSettlementResult) SettleBatchResponse {
	resp := SettleBatchResponse{
		Succeeded: result.Succeeded,
		Failed:    []FailedSettlementResponse{},
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []string{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, FailedSettlementResponse{
			SplitID: f.SplitID,
			Error:   f.Err.Error(),
		})
	}
	return resp
}
