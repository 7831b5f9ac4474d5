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

// ShiftHandler handles cash register session requests.
type ShiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss portssvc.ShiftSvcFacade) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

func registerShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade, authSvc portssvc.AuthSvcFacade) {
	h := NewShiftHandler(shiftService)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("", requirePermission(authSvc, "shifts.open"), h.OpenShift)
		shifts.POST("/:shiftID/close", requirePermission(authSvc, "shifts.close"), h.CloseShift)
		shifts.POST("/:shiftID/suspend", h.SuspendShift)
		shifts.GET("/current", h.GetCurrentShift)
	}
}

// OpenShift godoc
// @Summary Open a cash register session
// @Description Opens a session for a terminal with its opening float. A terminal can have at most one open session.
// @Tags shifts
// @Accept json
// @Produce json
// @Param shift body dto.OpenShiftRequest true "Terminal and opening float"
// @Success 201 {object} dto.ShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shifts [post]
// @Security BearerAuth
func (h *ShiftHandler) OpenShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	openerID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), req, openerID)
	if err != nil {
		if errors.Is(err, services.ErrShiftAlreadyOpen) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, logger, err, "Failed to open shift")
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

// CloseShift godoc
// @Summary Close a cash register session
// @Description Closes an open or suspended session with the counted drawer amount. A cash variance is recorded in the audit trail.
// @Tags shifts
// @Accept json
// @Produce json
// @Param shiftID path string true "Shift ID"
// @Param shift body dto.CloseShiftRequest true "Counted closing amount"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shifts/{shiftID}/close [post]
// @Security BearerAuth
func (h *ShiftHandler) CloseShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shiftID")

	closerID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), shiftID, req, closerID)
	if err != nil {
		respondError(c, logger, err, "Failed to close shift")
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// SuspendShift godoc
// @Summary Suspend a cash register session
// @Description Moves an open session to suspended, keeping its running totals.
// @Tags shifts
// @Produce json
// @Param shiftID path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shifts/{shiftID}/suspend [post]
// @Security BearerAuth
func (h *ShiftHandler) SuspendShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shiftID")

	actorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	shift, err := h.shiftService.SuspendShift(c.Request.Context(), shiftID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to suspend shift")
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// GetCurrentShift godoc
// @Summary Get the current session for a terminal
// @Tags shifts
// @Produce json
// @Param terminalID query string true "Terminal ID"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shifts/current [get]
// @Security BearerAuth
func (h *ShiftHandler) GetCurrentShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	terminalID := c.Query("terminalID")
	if terminalID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "terminalID query parameter is required"})
		return
	}

	shift, err := h.shiftService.GetCurrentShift(c.Request.Context(), terminalID)
	if err != nil {
		respondError(c, logger, err, "Failed to get current shift")
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}
