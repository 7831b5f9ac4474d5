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

// ProductHandler handles catalog and stock related requests.
type ProductHandler struct {
	productService portssvc.ProductSvcFacade
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps portssvc.ProductSvcFacade) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, authSvc portssvc.AuthSvcFacade) {
	h := NewProductHandler(productService)

	manage := requirePermission(authSvc, "products.manage")

	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/low-stock", h.ListLowStock)
		products.GET("/:productID", h.GetProduct)
		products.POST("", manage, h.CreateProduct)
		products.PUT("/:productID", manage, h.UpdateProduct)
		products.DELETE("/:productID", manage, h.DeactivateProduct)
	}

	stock := rg.Group("/stock")
	{
		stock.POST("/adjustments", requirePermission(authSvc, "products.adjust_stock"), h.AdjustStock)
		stock.GET("/variations/:variationID/movements", h.ListMovements)
	}
}

// CreateProduct godoc
// @Summary Create a product
// @Description Creates a product with its variations; a default variation is synthesized when none are given.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
// @Security BearerAuth
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// GetProduct godoc
// @Summary Get a product
// @Description Retrieves a product with its variations.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{productID} [get]
// @Security BearerAuth
func (h *ProductHandler) GetProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, logger, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// ListProducts godoc
// @Summary List products
// @Description Retrieves active products, optionally filtered by a search term over name, SKU and barcode.
// @Tags products
// @Produce json
// @Param search query string false "Search term"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
// @Security BearerAuth
func (h *ProductHandler) ListProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListLowStock godoc
// @Summary List low-stock products
// @Description Retrieves products whose stock is at or below their low-stock threshold.
// @Tags products
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} dto.ListProductsResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/low-stock [get]
// @Security BearerAuth
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := queryInt(c, "limit", 50)

	products, err := h.productService.ListLowStock(c.Request.Context(), limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list low-stock products")
		return
	}

	resp := dto.ToListProductsResponse(products)
	c.JSON(http.StatusOK, resp)
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Updates mutable product fields. Stock quantities are never changed here; use a stock adjustment.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{productID} [put]
// @Security BearerAuth
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	updaterID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req, updaterID)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// DeactivateProduct godoc
// @Summary Deactivate a product
// @Description Soft-deletes a product so it no longer appears in the catalog.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{productID} [delete]
// @Security BearerAuth
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	updaterID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), productID, updaterID); err != nil {
		respondError(c, logger, err, "Failed to deactivate product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "product deactivated"})
}

// AdjustStock godoc
// @Summary Adjust stock
// @Description Applies a signed stock delta through the movement ledger and returns the recorded movement.
// @Tags stock
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustStockRequest true "Adjustment details"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stock/adjustments [post]
// @Security BearerAuth
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	movement, err := h.productService.AdjustStock(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, services.ErrZeroAdjustment) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, logger, err, "Failed to adjust stock")
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockMovementResponse(movement))
}

// ListMovements godoc
// @Summary List stock movements
// @Description Retrieves the movement history of a variation, newest first, keyset paginated.
// @Tags stock
// @Produce json
// @Param variationID path string true "Variation ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stock/variations/{variationID}/movements [get]
// @Security BearerAuth
func (h *ProductHandler) ListMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	variationID := c.Param("variationID")

	limit := queryInt(c, "limit", 20)
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	movements, next, err := h.productService.ListMovements(c.Request.Context(), variationID, limit, nextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list stock movements")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movements": dto.ToStockMovementResponses(movements),
		"nextToken": next,
	})
}
