package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"storefront-analytics/internal/analytics"
	"storefront-analytics/internal/auth"
	internalhttp "storefront-analytics/internal/http"
	"storefront-analytics/internal/shared/configs"
	"storefront-analytics/internal/shared/loggers"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	// baseCancel ends the request contexts of open snapshot streams so
	// Shutdown does not have to wait out clients that never disconnect.
	baseCancel context.CancelFunc
}

// New creates and initializes a new App instance. One aggregator is
// constructed here and threaded explicitly into the middleware and the
// two analytics handlers; there is no ambient global state.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "storefront-analytics").
		Logger()

	// Initialize the traffic aggregator
	tracker := analytics.NewAggregator(analytics.Options{
		ActivityWindow:  time.Duration(config.Analytics.ActivityWindowSeconds) * time.Second,
		ActivityCap:     config.Analytics.ActivityCap,
		TopPagesLimit:   config.Analytics.TopPagesLimit,
		BucketRetention: time.Duration(config.Analytics.BucketRetentionHours) * time.Hour,
	})

	// Initialize the admin gate
	verifier := auth.NewJWTVerifier(
		config.Auth.JWTSecret,
		config.Auth.AdminRole,
		config.Auth.TokenQueryParam,
	)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	streamInterval := time.Duration(config.Analytics.StreamIntervalSeconds) * time.Second
	router := internalhttp.NewRouter(tracker, verifier, streamInterval, httpLogger)

	// Create HTTP server. WriteTimeout is typically 0 here: the snapshot
	// stream holds its response open for the life of the client.
	baseCtx, baseCancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:     config,
		appLogger:  appLogger,
		server:     server,
		baseCancel: baseCancel,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting storefront-analytics service on port %d (log_level=%s, stream_interval=%ds)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Analytics.StreamIntervalSeconds)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application. Open snapshot streams
// end when the server cancels their request contexts; the aggregator
// state is in-memory only and needs no teardown.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")

	// Close open streams first, then drain the rest.
	app.baseCancel()
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	return nil
}
