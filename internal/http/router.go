// Package httpapi assembles the Gin engine: the middleware stack, the
// operational endpoints and the versioned wellbeing API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-wellbeing-backend/docs"
	"github.com/tbourn/go-wellbeing-backend/internal/config"
	"github.com/tbourn/go-wellbeing-backend/internal/http/handlers"
	"github.com/tbourn/go-wellbeing-backend/internal/http/middleware"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/services"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
)

const (
	maxBodyBytes = 1 << 20

	// chat turns hit the paid completion API; one per two seconds per
	// session with a small burst
	chatRPS   = 0.5
	chatBurst = 3
)

// Deps are the collaborators the routes are built on.
type Deps struct {
	// DB backs the local ledger, survey history and idempotency records.
	DB       *gorm.DB
	Sessions *session.Store
	// Ledger receives registrations and survey logs (local or remote).
	Ledger    ledger.Ledger
	Completer services.Completer
}

// RegisterRoutes installs middleware and every route on r.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	local := ledger.NewLocal(deps.DB)
	assessSvc := &services.AssessmentService{
		Sessions: deps.Sessions,
		Ledger:   deps.Ledger,
		Gate: ledger.SaveGate{
			Enabled:       cfg.Ledger.SaveEnabled,
			URL:           cfg.Ledger.URL,
			AllowedPrefix: cfg.Ledger.AllowedPrefix,
		},
		AppID:   cfg.AppID,
		DB:      deps.DB,
		IdemTTL: cfg.IdempotencyTTL,
	}
	if cfg.Ledger.Backend == config.LedgerLocal {
		// the local backend has no URL to vet
		assessSvc.Gate.URL, assessSvc.Gate.AllowedPrefix = "", ""
	}
	convSvc := &services.ConversationService{
		Sessions:       deps.Sessions,
		Completer:      deps.Completer,
		MaxPromptRunes: cfg.MaxPromptRunes,
	}
	ledgerSvc := &services.LedgerService{DB: deps.DB, Local: local}
	h := handlers.New(assessSvc, convSvc, ledgerSvc)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{MaskHeaders: []string{"X-API-Key"}}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{joinPath(cfg.APIBasePath, "/sessions"), joinPath(cfg.APIBasePath, "/participants")},
		EnablePolicy:    true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthHandler(deps))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	idem := middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Routes: []string{http.MethodPost + " " + joinPath(cfg.APIBasePath, "/sessions/:id/surveys")},
		},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			return assessSvc.HasSubmission(ctx, scope, key, now)
		},
	)
	limit := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyBySessionOrIP()).
		WithCode(handlers.ErrCodeRateLimited).Handler()
	chatLimit := middleware.NewRateLimiter(chatRPS, chatBurst, middleware.KeyBySessionOrIP()).
		WithCode(handlers.ErrCodeRateLimited).Handler()

	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(idem, limit)
	{
		api.GET("/questions", h.ListQuestions)
		api.GET("/guidance/:level", h.GetGuidance)
		api.POST("/assess", h.Assess)

		api.POST("/sessions", h.CreateSession)
		s := api.Group("/sessions/:id")
		s.GET("", h.GetSession)
		s.POST("/register", h.Register)
		s.PUT("/answers/:question", h.Answer)
		s.PUT("/page", h.Navigate)
		s.POST("/surveys", h.SubmitSurvey)
		s.GET("/result", h.GetResult)
		s.PUT("/chat/open", h.SetChatOpen)
		s.GET("/chat/messages", h.ListChatMessages)
		s.POST("/chat/messages", chatLimit, h.SendChatMessage)

		api.POST("/ledger", h.LedgerEndpoint)
		api.GET("/participants/:id/surveys", h.ListParticipantSurveys)
	}
}

func healthHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if deps.Sessions != nil {
			body["sessions"] = deps.Sessions.Len()
		}
		if deps.Ledger != nil {
			body["ledger"] = deps.Ledger.Name()
		}
		if deps.DB != nil {
			if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				body["status"] = "degraded"
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

// corsMiddleware allows every origin when none are configured, otherwise
// only the listed ones. Credentials are never allowed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey, "If-None-Match"},
		ExposeHeaders: []string{"X-Request-ID", "ETag", "Idempotency-Replayed", "Retry-After", "Location"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{cors.New(base)}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	// cors only answers preflights and matched origins; add Vary for caches
	vary := func(c *gin.Context) {
		if _, ok := allowed[c.GetHeader("Origin")]; ok {
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Next()
	}
	return []gin.HandlerFunc{vary, cors.New(base)}
}

func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func joinPath(prefix, p string) string {
	if prefix == "/" {
		prefix = ""
	}
	return prefix + p
}
