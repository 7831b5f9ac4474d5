package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EmployeeRepo   EmployeeRepositoryFacade
	ProductRepo    ProductRepositoryFacade
	SaleRepo       SaleRepositoryWithTx
	LedgerRepo     LedgerRepositoryFacade
	CustomerRepo   CustomerRepositoryFacade
	ShiftRepo      ShiftRepositoryFacade
	AttendanceRepo AttendanceRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	SettingsRepo   SettingsRepositoryFacade
	ReportingRepo  ReportingRepositoryFacade
}
