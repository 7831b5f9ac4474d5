package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

// ReportingHandler handles the read-only report endpoints.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	ledgerService    portssvc.LedgerSvcFacade
	auditService     portssvc.AuditSvcFacade
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(rs portssvc.ReportingSvcFacade, ls portssvc.LedgerSvcFacade, as portssvc.AuditSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: rs, ledgerService: ls, auditService: as}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, ledgerService portssvc.LedgerSvcFacade, auditService portssvc.AuditSvcFacade, authSvc portssvc.AuthSvcFacade) {
	h := NewReportingHandler(reportingService, ledgerService, auditService)

	reports := rg.Group("/reports", requirePermission(authSvc, "sales.reports"))
	{
		reports.GET("/daily-summary", h.GetDailySummary)
		reports.GET("/top-products", h.GetTopProducts)
		reports.GET("/hourly-sales", h.GetHourlySales)
		reports.GET("/trial-balance", h.GetTrialBalance)
		reports.GET("/audit-events", h.ListAuditEvents)
	}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/transactions/:transactionID", h.GetLedgerEntries)
	}
}

// GetDailySummary godoc
// @Summary Daily sales summary
// @Description Aggregates sales for one calendar day: totals, per-payment-method breakdown and customer counts. Refunds net out of the totals.
// @Tags reports
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/daily-summary [get]
// @Security BearerAuth
func (h *ReportingHandler) GetDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	dayStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	day, err := time.Parse("2006-01-02", dayStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.GetDailySummary(c.Request.Context(), day)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily summary")
		return
	}

	c.JSON(http.StatusOK, dto.DailySummaryResponse{Date: dayStr, Summary: *summary})
}

// GetTopProducts godoc
// @Summary Top selling products
// @Description Ranks products by net quantity sold within a date range.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {object} dto.TopProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/top-products [get]
// @Security BearerAuth
func (h *ReportingHandler) GetTopProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	limit := queryInt(c, "limit", 10)

	rows, err := h.reportingService.GetTopProducts(c.Request.Context(), params.From, params.To, limit)
	if err != nil {
		respondError(c, logger, err, "Failed to generate top products report")
		return
	}

	c.JSON(http.StatusOK, dto.TopProductsResponse{Products: rows})
}

// GetHourlySales godoc
// @Summary Hourly sales distribution
// @Description Buckets sales by hour of day within a date range.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} dto.HourlySalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/hourly-sales [get]
// @Security BearerAuth
func (h *ReportingHandler) GetHourlySales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.GetHourlySales(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to generate hourly sales report")
		return
	}

	c.JSON(http.StatusOK, dto.HourlySalesResponse{Hours: rows})
}

// GetTrialBalance godoc
// @Summary Ledger trial balance
// @Description Aggregates debits and credits per account over a date range. Totals balance when every posting balanced.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/trial-balance [get]
// @Security BearerAuth
func (h *ReportingHandler) GetTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.ledgerService.GetTrialBalance(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{Rows: rows})
}

// GetLedgerEntries godoc
// @Summary Ledger entries of a transaction
// @Description Retrieves the postings recorded for one sale or refund.
// @Tags ledger
// @Produce json
// @Param transactionID path string true "Sale or refund ID"
// @Success 200 {array} domain.LedgerEntry
// @Failure 500 {object} ErrorResponse
// @Router /ledger/transactions/{transactionID} [get]
// @Security BearerAuth
func (h *ReportingHandler) GetLedgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entries, err := h.ledgerService.GetEntriesByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to get ledger entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ListAuditEvents godoc
// @Summary List audit events
// @Description Retrieves audit trail events within a date range, newest first, optionally filtered by module and actor.
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Param module query string false "Module filter (sales, inventory, auth, ...)"
// @Param actorID query string false "Actor employee ID filter"
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} domain.AuditEvent
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/audit-events [get]
// @Security BearerAuth
func (h *ReportingHandler) ListAuditEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	limit := queryInt(c, "limit", 100)

	events, err := h.auditService.ListEvents(c.Request.Context(), params.From, params.To, c.Query("module"), c.Query("actorID"), limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit events")
		return
	}

	c.JSON(http.StatusOK, events)
}
