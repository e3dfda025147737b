package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/middleware"
	"github.com/textora/core/internal/modules/admin"
	"github.com/textora/core/internal/modules/ai"
	"github.com/textora/core/internal/modules/auth"
	"github.com/textora/core/internal/modules/feedback"
	"github.com/textora/core/internal/modules/health"
	"github.com/textora/core/internal/modules/history"
	"github.com/textora/core/internal/modules/settings"
	"github.com/textora/core/internal/pkg/mail"
	"github.com/textora/core/internal/pkg/ratelimit"
	pkgredis "github.com/textora/core/internal/pkg/redis"
	"github.com/textora/core/internal/pkg/response"
)

const (
	aiLimitMax      = 20
	aiLimitWindow   = time.Minute
	authLimitMax    = 10
	authLimitWindow = 15 * time.Minute
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cfg := a.cfg

	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	var aiLimiter, authLimiter ratelimit.Limiter
	if rc != nil {
		aiLimiter = ratelimit.NewRedisLimiter(rc.Raw(), "ai", aiLimitMax, aiLimitWindow)
		authLimiter = ratelimit.NewRedisLimiter(rc.Raw(), "auth", authLimitMax, authLimitWindow)
	} else {
		aiLimiter = ratelimit.NewMemoryLimiter(aiLimitMax, aiLimitWindow)
		authLimiter = ratelimit.NewMemoryLimiter(authLimitMax, authLimitWindow)
	}

	api := r.Group("/api")

	// Shared services
	settingsSvc := settings.NewService(db)
	historySvc := history.NewService(db)
	aiClient := ai.NewClient(cfg.MLServiceURL)

	health.RegisterRoutes(api, db, aiClient, cfg.Env, Version)
	r.GET("/health", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/api/health")
	})

	// Auth
	authSvc := auth.NewService(db, mail.New(cfg.Mail), cfg.AppURL, a.logger)
	auth.NewHandler(authSvc, cfg.JWTTTL, !cfg.IsDev()).
		RegisterRoutes(api, authMW, middleware.RateLimitByIP(authLimiter))

	// AI proxy
	ai.NewHandler(aiClient, settingsSvc, historySvc, rc, aiLimiter, a.logger).
		RegisterRoutes(api, authMW)

	// History ledger
	history.NewHandler(historySvc).RegisterRoutes(api, authMW)

	// Feedback (public submit, admin listing)
	feedback.NewHandler(feedback.NewService(db)).
		RegisterRoutes(api, authMW, middleware.AdminOnly())

	// Admin
	adminGrp := api.Group("/admin", authMW, middleware.AdminOnly())
	admin.NewHandler(admin.NewService(db)).RegisterRoutes(adminGrp)
	settings.NewHandler(settingsSvc).RegisterRoutes(adminGrp)
}
