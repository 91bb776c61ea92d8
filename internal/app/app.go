package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/bracket-pool/external/notifier"
	"github.com/riskibarqy/bracket-pool/internal/config"
	"github.com/riskibarqy/bracket-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/bracket-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/bracket-pool/internal/platform/cache"
	"github.com/riskibarqy/bracket-pool/internal/platform/resilience"
	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

// NewHTTPServer builds the full service graph over one Postgres pool.
// The returned cleanup closes the pool and must run after the server
// has shut down.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Bootstrap(bootstrapCtx, db, postgres.BootstrapConfig{
		TeamsCSVPath:  cfg.TeamsCSVPath,
		AdminUsername: cfg.DefaultAdminUsername,
		AdminPassword: cfg.DefaultAdminPassword,
	}); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("bootstrap database: %w", err)
	}

	router := buildRouter(cfg, db, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRouter(cfg config.Config, db *sqlx.DB, logger *slog.Logger) http.Handler {
	bracketRepo := postgres.NewBracketRepository(db)
	entryRepo := postgres.NewEntryRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	settingsSvc := usecase.NewSettingsService(settingsRepo, logger)
	standingsSvc := usecase.NewStandingsService(entryRepo, settingsSvc, store, logger)
	scoringSvc := usecase.NewScoringService(entryRepo, standingsSvc, logger)
	tournamentSvc := usecase.NewTournamentService(bracketRepo, scoringSvc, logger)
	entrySvc := usecase.NewEntryService(entryRepo, bracketRepo, settingsSvc, standingsSvc, logger)
	authSvc := usecase.NewAuthService(adminRepo, logger)

	var sender usecase.Sender
	if cfg.NotifierEnabled {
		sender = notifier.NewClient(notifier.ClientConfig{
			BaseURL:     cfg.NotifierBaseURL,
			APIKey:      cfg.NotifierAPIKey,
			SenderName:  cfg.NotifierSenderName,
			SenderEmail: cfg.NotifierSenderEmail,
			Timeout:     cfg.NotifierTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifierCircuitEnabled,
				FailureThreshold: cfg.NotifierCircuitFailureCount,
				OpenTimeout:      cfg.NotifierCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NotifierCircuitHalfOpenMax,
			},
		}, logger)
	}
	notifySvc := usecase.NewNotifyService(entryRepo, sender, cfg.NotifyWorkerCount, logger)

	handler := httpapi.NewHandler(
		tournamentSvc,
		scoringSvc,
		entrySvc,
		standingsSvc,
		settingsSvc,
		authSvc,
		notifySvc,
		logger,
	)

	return httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)
}
