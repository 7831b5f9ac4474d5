package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	employeeRepo := newPgxEmployeeRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool, productRepo, ledgerRepo)
	customerRepo := newPgxCustomerRepository(dbPool)
	shiftRepo := newPgxShiftRepository(dbPool)
	attendanceRepo := newPgxAttendanceRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EmployeeRepo:   employeeRepo,
		ProductRepo:    productRepo,
		SaleRepo:       saleRepo,
		LedgerRepo:     ledgerRepo,
		CustomerRepo:   customerRepo,
		ShiftRepo:      shiftRepo,
		AttendanceRepo: attendanceRepo,
		AuditRepo:      auditRepo,
		SettingsRepo:   settingsRepo,
		ReportingRepo:  reportingRepo,
	}
}
