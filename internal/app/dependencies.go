package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/bizcalc/internal/config"
	"github.com/klokku/bizcalc/internal/utils"
	"github.com/klokku/bizcalc/pkg/allocation"
	"github.com/klokku/bizcalc/pkg/ledger"
	"github.com/klokku/bizcalc/pkg/payroll"
	"github.com/klokku/bizcalc/pkg/project"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	AllocationHandler *allocation.Handler

	ProjectRepo    project.Repository
	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	PayrollRepo    payroll.Repository
	PayrollService *payroll.ServiceImpl
	PayrollHandler *payroll.Handler

	LedgerRepo    ledger.Repository
	LedgerService *ledger.ServiceImpl
	LedgerHandler *ledger.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.AllocationHandler = allocation.NewHandler()

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.PayrollRepo = payroll.NewRepository(db)
	deps.PayrollService = payroll.NewService(deps.PayrollRepo, payroll.TaxTableFromConfig(cfg.Payroll))
	deps.PayrollHandler = payroll.NewHandler(deps.PayrollService)

	deps.LedgerRepo = ledger.NewRepository(db)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo, deps.Clock)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService, deps.Clock)

	return deps
}
