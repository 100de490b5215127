package domain

import "github.com/shopspring/decimal"

// NetBalance is one edge of the netted pairwise debt graph: after collapsing
// every unsettled split between the two parties (in both directions), the
// debtor still owes the creditor Amount. Amount is always positive; the
// opposite perspective is the same edge with the sign flipped.
type NetBalance struct {
	DebtorID   string          `json:"debtorID"`
	CreditorID string          `json:"creditorID"`
	Amount     decimal.Decimal `json:"amount"` // In the reporting currency
}

// EdgeKey identifies a directed debtor -> creditor edge in the raw
// (pre-netting) split graph.
type EdgeKey struct {
	DebtorID   string
	CreditorID string
}

// Contribution records one split's share of a directed edge, after
// normalization into the reporting currency. Contribution lists are kept
// oldest-first so settlement allocation is deterministic.
type Contribution struct {
	SplitID string
	Amount  decimal.Decimal
}

// PairwiseGraph is the netted debt graph together with the per-edge split
// contributions that built it. Edges are sorted by (debtor, creditor) ID and
// zero-valued edges are pruned. Contributions retain the raw direction of
// each split so simplified payments can be traced back to split IDs.
type PairwiseGraph struct {
	Currency      string
	Edges         []NetBalance
	Contributions map[EdgeKey][]Contribution
}

// SplitCount returns the number of splits that contributed to the graph.
func (g *PairwiseGraph) SplitCount() int {
	n := 0
	for _, contribs := range g.Contributions {
		n += len(contribs)
	}
	return n
}

// BalanceSummary is the viewer-relative result of balance aggregation:
// scalar totals plus the full pairwise graph, all in the reporting currency.
// It is derived data, recomputed on demand and never persisted.
type BalanceSummary struct {
	ViewerID      string          `json:"viewerID"`
	Currency      string          `json:"currency"`
	TotalOwed     decimal.Decimal `json:"totalOwed"`     // What the viewer owes others
	TotalOwedToMe decimal.Decimal `json:"totalOwedToMe"` // What others owe the viewer
	Graph         *PairwiseGraph  `json:"-"`
}
