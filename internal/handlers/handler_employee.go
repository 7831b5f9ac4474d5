package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

// EmployeeHandler handles staff management requests.
type EmployeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es portssvc.EmployeeSvcFacade) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := NewEmployeeHandler(employeeService)

	// Staff management is admin territory; admins are the only role whose
	// default tree grants full_access.
	admin := requirePermission(employeeService, "employees.manage")

	employees := rg.Group("/employees")
	{
		employees.GET("/me", h.GetMe)
		employees.GET("", admin, h.ListEmployees)
		employees.GET("/:employeeID", admin, h.GetEmployee)
		employees.POST("", admin, h.CreateEmployee)
		employees.PUT("/:employeeID", admin, h.UpdateEmployee)
	}
}

// GetMe godoc
// @Summary Get own profile
// @Tags employees
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees/me [get]
// @Security BearerAuth
func (h *EmployeeHandler) GetMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// CreateEmployee godoc
// @Summary Register an employee
// @Description Registers an employee with a hashed password and the role's default permission tree.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [post]
// @Security BearerAuth
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// GetEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees/{employeeID} [get]
// @Security BearerAuth
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to get employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// ListEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.EmployeeResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [get]
// @Security BearerAuth
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

// UpdateEmployee godoc
// @Summary Update an employee
// @Description Updates profile fields. A role change resets the permission tree to the new role's defaults.
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees/{employeeID} [put]
// @Security BearerAuth
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	updaterID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), employeeID, req, updaterID)
	if err != nil {
		respondError(c, logger, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
