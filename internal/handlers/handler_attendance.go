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

// AttendanceHandler handles clock-in and clock-out requests.
type AttendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as portssvc.AttendanceSvcFacade) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := NewAttendanceHandler(attendanceService)

	attendance := rg.Group("/attendance")
	{
		attendance.POST("/clock-in", h.ClockIn)
		attendance.POST("/clock-out", h.ClockOut)
		attendance.GET("/today", h.ListToday)
		attendance.GET("/employees/:employeeID", h.ListByEmployee)
	}
}

// ClockIn godoc
// @Summary Clock in
// @Description Opens an attendance record for the authenticated employee. A second clock-in without a clock-out is rejected.
// @Tags attendance
// @Accept json
// @Produce json
// @Param clockIn body dto.ClockInRequest false "Method and notes"
// @Success 201 {object} dto.AttendanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attendance/clock-in [post]
// @Security BearerAuth
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	record, err := h.attendanceService.ClockIn(c.Request.Context(), employeeID, req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyClockedIn) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, logger, err, "Failed to clock in")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttendanceResponse(record))
}

// ClockOut godoc
// @Summary Clock out
// @Description Closes the open attendance record of the authenticated employee and computes worked minutes.
// @Tags attendance
// @Produce json
// @Success 200 {object} dto.AttendanceResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attendance/clock-out [post]
// @Security BearerAuth
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.attendanceService.ClockOut(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondError(c, logger, err, "Failed to clock out")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponse(record))
}

// ListToday godoc
// @Summary List today's attendance
// @Tags attendance
// @Produce json
// @Success 200 {array} dto.AttendanceResponse
// @Failure 500 {object} ErrorResponse
// @Router /attendance/today [get]
// @Security BearerAuth
func (h *AttendanceHandler) ListToday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.attendanceService.ListToday(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list attendance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponses(records))
}

// ListByEmployee godoc
// @Summary List an employee's attendance
// @Tags attendance
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attendance/employees/{employeeID} [get]
// @Security BearerAuth
func (h *AttendanceHandler) ListByEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.attendanceService.ListByEmployee(c.Request.Context(), employeeID, params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to list attendance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponses(records))
}
