package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/handler"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/rbac"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	milestoneHandler *handler.MilestoneHandler,
	projectHandler *handler.ProjectHandler,
	jwtSecret string,
	db *pgxpool.Pool,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		view := auth.Group("/")
		view.Use(RequirePermission(rbac.PermissionViewReports))
		{
			view.GET("/reports/overview", reportHandler.Overview)
			view.GET("/reports/time-by-project", reportHandler.TimeByProject)
			view.GET("/projects", projectHandler.List)
			view.GET("/projects/:id", projectHandler.Get)
			view.GET("/projects/:id/financials", reportHandler.ProjectFinancials)
			view.GET("/projects/:id/account-summary", reportHandler.ProjectAccountSummary)
			view.GET("/developers/:id/account-summary", reportHandler.DeveloperAccountSummary)
			view.GET("/milestones", milestoneHandler.List)
		}

		manage := auth.Group("/")
		manage.Use(RequirePermission(rbac.PermissionManageMilestones))
		{
			manage.POST("/milestones", milestoneHandler.Create)
			manage.PATCH("/milestones/:id", milestoneHandler.Update)
			manage.DELETE("/milestones/:id", milestoneHandler.Delete)
		}

		configure := auth.Group("/")
		configure.Use(RequirePermission(rbac.PermissionConfigureFinance))
		{
			configure.PATCH("/projects/:id/financial-config", projectHandler.UpdateFinancialConfig)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
