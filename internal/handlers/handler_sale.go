package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/core/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

// SaleHandler handles checkout, refund and sale history requests.
type SaleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss portssvc.SaleSvcFacade) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade, authSvc portssvc.AuthSvcFacade) {
	h := NewSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", requirePermission(authSvc, "sales.process"), h.ProcessSale)
		sales.POST("/refunds", requirePermission(authSvc, "sales.refund"), h.ProcessRefund)
		sales.GET("", h.ListSales)
		sales.GET("/:saleID", h.GetSale)
	}
}

// ProcessSale godoc
// @Summary Process a checkout
// @Description Validates the cart, computes totals, persists the sale atomically with stock decrements and ledger postings, then returns the sale and a render-ready receipt.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.ProcessSaleRequest true "Cart and payment details"
// @Success 201 {object} dto.ProcessSaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales [post]
// @Security BearerAuth
func (h *SaleHandler) ProcessSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cashierID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ProcessSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.saleService.ProcessSale(c.Request.Context(), req, cashierID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInsufficientPaid):
			c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrCashierInactive):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			respondError(c, logger, err, "Failed to process sale")
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ProcessRefund godoc
// @Summary Refund (part of) a sale
// @Description Creates a linked refund sale with proportional amounts, restores stock and posts reversing ledger entries, all atomically.
// @Tags sales
// @Accept json
// @Produce json
// @Param refund body dto.ProcessRefundRequest true "Refund lines and reason"
// @Success 201 {object} dto.ProcessSaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales/refunds [post]
// @Security BearerAuth
func (h *SaleHandler) ProcessRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ProcessRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.saleService.ProcessRefund(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefundNotPositive):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			respondError(c, logger, err, "Failed to process refund")
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSale godoc
// @Summary Get a sale
// @Description Retrieves a sale with its items and the stock movements it caused.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.GetSaleDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales/{saleID} [get]
// @Security BearerAuth
func (h *SaleHandler) GetSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	resp, err := h.saleService.GetSaleDetails(c.Request.Context(), saleID)
	if err != nil {
		respondError(c, logger, err, "Failed to get sale")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSales godoc
// @Summary List sales
// @Description Retrieves sale history newest first, keyset paginated.
// @Tags sales
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, exclusive)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales [get]
// @Security BearerAuth
func (h *SaleHandler) ListSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, resp)
}
