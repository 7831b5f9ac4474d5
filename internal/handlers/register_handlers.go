package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/twinxhq/twinx-pos/cmd/docs"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/middleware"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.Employee)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Password changes need the authenticated employee, so the route lives
	// inside the guarded group rather than with the public auth routes.
	authHandler := NewAuthHandler(service.Employee)
	v1.PUT("/auth/password", authHandler.ChangePassword)

	// Delegate route registration to specific handlers, passing required services
	registerEmployeeRoutes(v1, service.Employee)
	registerProductRoutes(v1, service.Product, service.Employee)
	registerCustomerRoutes(v1, service.Customer)
	registerSaleRoutes(v1, service.Sale, service.Employee)
	registerShiftRoutes(v1, service.Shift, service.Employee)
	registerAttendanceRoutes(v1, service.Attendance)
	registerReportingRoutes(v1, service.Reporting, service.Ledger, service.Audit, service.Employee)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
