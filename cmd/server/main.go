// Command server runs the wellbeing assessment API.
//
// @title           Wellbeing Assessment API
// @version         1.0
// @description     Stress screening questionnaire, participant ledger and a short supportive chat.
// @BasePath        /api/v1
// @schemes         http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-wellbeing-backend/internal/completion"
	"github.com/tbourn/go-wellbeing-backend/internal/config"
	httpapi "github.com/tbourn/go-wellbeing-backend/internal/http"
	"github.com/tbourn/go-wellbeing-backend/internal/ledger"
	"github.com/tbourn/go-wellbeing-backend/internal/observability"
	"github.com/tbourn/go-wellbeing-backend/internal/repo"
	"github.com/tbourn/go-wellbeing-backend/internal/session"
	"github.com/tbourn/go-wellbeing-backend/internal/sysutil"
)

var version = "dev"

const (
	shutdownGrace = 10 * time.Second
	pruneEvery    = 5 * time.Minute
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(sysutil.LogOptions{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: cfg.OTEL.ServiceName,
		Version: version,
	})
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, version)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	led, err := newLedger(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("configure ledger")
	}

	completer := completion.New(completion.Config{
		BaseURL:   cfg.Completion.BaseURL,
		APIKey:    cfg.Completion.APIKey,
		Model:     cfg.Completion.Model,
		MaxTokens: cfg.Completion.MaxTokens,
	})
	if cfg.Completion.APIKey == "" {
		log.Warn().Msg("COMPLETION_API_KEY not set; chat replies will report an error notice")
	}

	sessions := session.NewStore(time.Now)
	go prune(ctx, sessions, db, cfg.SessionTTL)

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Sessions:  sessions,
		Ledger:    led,
		Completer: completer,
	}, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("ledger", led.Name()).
			Str("model", completer.Model()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracing(sctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLedger(cfg config.Config, db *gorm.DB) (ledger.Ledger, error) {
	if cfg.Ledger.Backend != config.LedgerRemote {
		return ledger.NewLocal(db), nil
	}
	remote, err := ledger.NewRemote(cfg.Ledger.URL, &http.Client{Timeout: cfg.Ledger.Timeout})
	if err != nil {
		return nil, err
	}
	return remote, nil
}

// prune drops idle sessions and expired submission keys until ctx is
// cancelled.
func prune(ctx context.Context, st *session.Store, db *gorm.DB, ttl time.Duration) {
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Prune(now.Add(-ttl)); n > 0 {
				log.Debug().Int("pruned", n).Int("live", st.Len()).Msg("sessions pruned")
			}
			if n, err := repo.PurgeSubmissionKeys(ctx, db, now); err != nil {
				log.Warn().Err(err).Msg("purge submission keys")
			} else if n > 0 {
				log.Debug().Int64("purged", n).Msg("submission keys purged")
			}
		}
	}
}
