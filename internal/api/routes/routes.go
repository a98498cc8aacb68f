package routes

import (
	"ost-panel/internal/api/handlers"
	"ost-panel/internal/api/middleware"
	"ost-panel/internal/config"
	"ost-panel/internal/models"
	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	// Services
	authService := services.NewAuthService(cfg)
	auditService := services.NewAuditService(logger)
	equipoService := services.NewEquipoService(auditService)
	solicitudService := services.NewSolicitudService()
	archivoService := services.NewArchivoService()
	reportService := services.NewReportService()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(cfg)
	equipoHandler := handlers.NewEquipoHandler(equipoService)
	solicitudHandler := handlers.NewSolicitudHandler(solicitudService)
	archivoHandler := handlers.NewArchivoHandler(archivoService)
	auditHandler := handlers.NewAuditHandler(auditService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)

		// Authenticated, no specific permission
		protected.GET("/proximo-ost", equipoHandler.ProximoOST)
		protected.POST("/users/me/password", userHandler.UpdateOwnPassword)

		// Read-only views
		view := protected.Group("", middleware.RequirePermission(models.PermissionView))
		{
			view.GET("/dashboard", dashboardHandler.Stats)
			view.GET("/informe-mensual", dashboardHandler.Monthly)
			view.GET("/solicitudes", solicitudHandler.List)
			view.GET("/equipos", equipoHandler.List)
			view.GET("/archivos", archivoHandler.List)
		}

		// Mutations
		edit := protected.Group("", middleware.RequirePermission(models.PermissionEdit))
		{
			edit.POST("/equipos", equipoHandler.Create)
			edit.POST("/equipo/crear", equipoHandler.Create) // legacy alias
			edit.PUT("/equipo/:id", equipoHandler.Update)
			edit.PUT("/solicitud/:id", solicitudHandler.Update)
		}

		// Soft delete / restore
		del := protected.Group("", middleware.RequirePermission(models.PermissionDelete))
		{
			del.DELETE("/equipo/:id", equipoHandler.Delete)
			del.POST("/equipo/:id/restaurar", equipoHandler.Restore)
		}

		// User management
		users := protected.Group("/users", middleware.RequirePermission(models.PermissionManageUsers))
		{
			users.GET("", userHandler.GetUsers)
			users.POST("/create", userHandler.CreateUser)
			users.POST("/update-role", userHandler.UpdateRole)
			users.POST("/update-password", userHandler.UpdatePassword)
			users.POST("/toggle-status", userHandler.ToggleStatus)
		}

		// Audit trail
		audit := protected.Group("", middleware.RequirePermission(models.PermissionViewAudit))
		{
			audit.GET("/auditoria", auditHandler.List)
		}
	}
}
