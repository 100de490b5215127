package services

import (
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. recomputeTrigger is fired whenever a settlement changes split
// state; pass the recompute worker's Kick, or nil to disable.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, recomputeTrigger func()) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency service first since rate normalization depends on it for
	// minor-unit precision.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Rate = NewRateService(repos.RateRepo, container.Currency)

	container.Balance = NewBalanceService(repos.SplitRepo, container.Rate)
	container.Simplify = NewSimplifyService(container.Balance,
		WithMinSplits(cfg.SimplifyMinSplits),
	)

	settlementOpts := []SettlementOption{}
	if recomputeTrigger != nil {
		settlementOpts = append(settlementOpts, WithRecomputeTrigger(recomputeTrigger))
	}
	container.Settlement = NewSettlementService(repos.SplitRepo, settlementOpts...)

	return container
}
