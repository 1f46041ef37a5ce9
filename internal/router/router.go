package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/controller"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth      *controller.AuthController
	Entity    *controller.EntityController
	Bulk      *controller.BulkController
	Audit     *controller.AuditController
	Dashboard *controller.DashboardController
	Settings  *controller.SettingsController
	Activity  *controller.ActivityController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Hubline admin API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.controllers.Auth.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.controllers.Auth.GetMe)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(string(model.RoleAdmin)))
		{
			entities := admin.Group("/entities/:kind")
			{
				entities.GET("", r.controllers.Entity.ListEntities)
				entities.POST("", r.controllers.Entity.CreateEntity)
				entities.GET("/:id", r.controllers.Entity.GetEntity)
				entities.PUT("/:id", r.controllers.Entity.UpdateEntity)
				entities.DELETE("/:id", r.controllers.Entity.DeleteEntity)
				entities.POST("/:id/approve", r.controllers.Entity.ApproveEntity)
				entities.POST("/:id/reject", r.controllers.Entity.RejectEntity)
			}

			bulk := admin.Group("/bulk")
			{
				bulk.POST("/approve", r.controllers.Bulk.BulkApprove)
				bulk.POST("/reject", r.controllers.Bulk.BulkReject)
			}

			audit := admin.Group("/audit-logs")
			{
				audit.GET("", r.controllers.Audit.ListAuditLogs)
				audit.GET("/export", r.controllers.Audit.ExportAuditLogs)
			}

			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/statistics", r.controllers.Dashboard.GetStatistics)
				dashboard.GET("/revenue", r.controllers.Dashboard.GetRevenue)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/commission", r.controllers.Settings.GetCommission)
				settings.PUT("/commission", r.controllers.Settings.UpdateCommission)
			}

			admin.GET("/ws/activity", r.controllers.Activity.Connect)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
