package services

import (
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first: nearly everything else writes to the trail.
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Employee = NewEmployeeService(repos.EmployeeRepo, container.Audit, cfg)
	container.Product = NewProductService(repos.ProductRepo, container.Audit)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.Audit)
	container.Shift = NewShiftService(repos.ShiftRepo, container.Audit)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, repos.EmployeeRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, cfg.Accounting)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// The sale orchestrator sits on top of everything above.
	container.Sale = NewSaleService(
		repos.SaleRepo,
		repos.ProductRepo,
		repos.EmployeeRepo,
		repos.CustomerRepo,
		repos.SettingsRepo,
		container.Ledger,
		container.Customer,
		container.Shift,
		container.Audit,
		cfg,
	)

	return container
}
