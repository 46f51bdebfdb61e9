package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/spendscope/spendscope-backend/cmd/docs"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/middleware"
	"github.com/spendscope/spendscope-backend/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerOrganizationRoutes(v1, services)
}

// registerOrganizationRoutes registers the organization detail route and the
// organization-scoped routes nested under it.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	// Every data route is nested under a specific organization; the tenant ID
	// always comes from the URL, never from the request body.
	orgSpecific := rg.Group("/organizations/:organization_id")
	{
		orgSpecific.GET("", h.getOrganization)

		RegisterUploadRoutes(orgSpecific, services.Upload)
		registerTransactionRoutes(orgSpecific, services.Transaction)
		registerSupplierRoutes(orgSpecific, services.Supplier)
		registerCategoryRoutes(orgSpecific, services.Category)
	}
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
