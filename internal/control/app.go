package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/appstore/internal/category"
	"github.com/vietddude/appstore/internal/core/config"
	"github.com/vietddude/appstore/internal/core/domain"
	"github.com/vietddude/appstore/internal/infra/operation"
	redisclient "github.com/vietddude/appstore/internal/infra/redis"
	"github.com/vietddude/appstore/internal/server"
)

// App wires the category provider, its backends and the HTTP server.
type App struct {
	cfg         Config
	client      *operation.Client
	provider    *category.Provider
	server      *server.Server
	redisClient *redisclient.Client
	group       *errgroup.Group
	errCh       chan error
	log         *slog.Logger
}

// Config holds the application configuration.
type Config struct {
	Port        int
	Environment config.EnvironmentConfig
	Settings    config.SettingsConfig
	Category    config.CategoryConfig
	Redis       redisclient.Config
}

// ConfigFrom maps a loaded AppConfig onto the application config.
func ConfigFrom(cfg *config.AppConfig) Config {
	return Config{
		Port:        cfg.Server.Port,
		Environment: cfg.Environment,
		Settings:    cfg.Settings,
		Category:    cfg.Category,
		Redis:       cfg.Redis,
	}
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	if cfg.Environment.OperationServer == "" {
		return nil, errors.New("operation server is not configured")
	}

	client := operation.NewClient(cfg.Environment.OperationServer, cfg.Category.RequestTimeout)
	provider := category.NewProvider(client, category.Config{
		ThrottleWindow: cfg.Category.ThrottleWindow,
		MaxRetries:     cfg.Category.Retries(),
	})

	var redisClient *redisclient.Client
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		provider.SetSnapshotter(redisClient)
		slog.Info("Mirroring category snapshots to Redis")
	}

	srv := server.NewServer(provider, client, ServersFrom(cfg), cfg.Port)

	return &App{
		cfg:         cfg,
		client:      client,
		provider:    provider,
		server:      srv,
		redisClient: redisClient,
		errCh:       make(chan error, 1),
		log:         slog.Default(),
	}, nil
}

// ServersFrom builds the servers record exposed to the front-end.
func ServersFrom(cfg Config) domain.Servers {
	return domain.Servers{
		MetadataServer:       cfg.Environment.MetadataServer,
		OperationServer:      cfg.Environment.OperationServer,
		Region:               cfg.Settings.Region,
		SupportSignIn:        cfg.Settings.SupportSignIn,
		ThemeName:            cfg.Settings.ThemeName,
		AutoInstall:          cfg.Settings.AutoInstall,
		AllowShowPackageName: cfg.Settings.AllowShowPackageName,
		Production:           cfg.Environment.Production,
	}
}

// Provider returns the category provider.
func (a *App) Provider() *category.Provider {
	return a.provider
}

// Errors delivers a fatal error from a background component, such as the
// HTTP server exiting unexpectedly.
func (a *App) Errors() <-chan error {
	return a.errCh
}

// Addr returns the address the HTTP server is bound to.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Start binds the HTTP port, then serves and warms the category cache in
// the background. Bind errors are returned directly; later server failures
// are delivered on Errors.
func (a *App) Start(ctx context.Context) error {
	if err := a.server.Listen(); err != nil {
		return err
	}

	a.group, ctx = errgroup.WithContext(ctx)

	a.group.Go(func() error {
		a.log.Info("Starting HTTP server", "addr", a.server.Addr())
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server failed", "error", err)
			select {
			case a.errCh <- err:
			default:
			}
			return err
		}
		return nil
	})

	a.group.Go(func() error {
		a.provider.Warm(ctx)
		a.provider.Wait()
		a.log.Info("Category cache warmed", "fallback", a.provider.Fallback())
		return nil
	})

	return nil
}

// Stop stops the app.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping app...")

	err := a.server.Stop(ctx)

	if a.group != nil {
		done := make(chan error, 1)
		go func() { done <- a.group.Wait() }()
		select {
		case gerr := <-done:
			err = errors.Join(err, gerr)
		case <-ctx.Done():
			err = errors.Join(err, ctx.Err())
		}
	}

	// Close Redis
	if a.redisClient != nil {
		if cerr := a.redisClient.Close(); cerr != nil {
			a.log.Warn("Failed to close Redis", "error", cerr)
		}
	}

	_ = a.client.Close()
	return err
}
