// Package router assembles the HTTP surface: middleware, health and metrics
// endpoints, and every resource under /api.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"equipment-backend/internal/labor/dailyreports"
	"equipment-backend/internal/labor/salaryreports"
	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/config"
	"equipment-backend/internal/platform/logger"
	"equipment-backend/internal/platform/metrics"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/rentedtools"
	"equipment-backend/internal/site/returns"
	"equipment-backend/internal/site/toolgroups"
	"equipment-backend/internal/site/tools"
)

type Deps struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Metrics  *metrics.Metrics // nil = no /metrics
	Tokens   *auth.TokenManager
	Services Services
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(d.Log))
	_ = r.SetTrustedProxies(nil)

	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	if d.Config.Mode == config.ModeDev {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.Config.HTTP.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", auth.TokenHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", auth.TokenHeader, logger.RequestIDHeader},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	g := auth.NewGuards(d.Tokens)
	s := d.Services
	api := r.Group("/api")
	auth.RegisterRoutes(api, s.Users, g)
	projects.RegisterRoutes(api, s.Projects, g)
	toolgroups.RegisterRoutes(api, s.ToolGroups, g)
	tools.RegisterRoutes(api, s.Tools, g)
	rentedtools.RegisterRoutes(api, s.RentedTools, g)
	returns.RegisterRoutes(api, s.Returns)
	dailyreports.RegisterRoutes(api, s.DailyReports, g)
	salaryreports.RegisterRoutes(api, s.SalaryReports, g)

	r.NoRoute(func(c *gin.Context) {
		apierr.Write(c, apierr.ErrNotFound("route not found"))
	})
	return r
}
