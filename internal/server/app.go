// Package server initializes and runs the s3share application: it wires the
// logger, the object storage backend, the identity provider and metrics into
// the web server, and shuts everything down on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/dmitrijs2005/s3share/internal/identity"
	"github.com/dmitrijs2005/s3share/internal/logging"
	"github.com/dmitrijs2005/s3share/internal/metrics"
	"github.com/dmitrijs2005/s3share/internal/server/web"
	"github.com/dmitrijs2005/s3share/internal/share"
	"github.com/dmitrijs2005/s3share/internal/storage"
)

// newStore is a test seam for storage.New.
var newStore = storage.New

type App struct {
	config *config.Config
	logger *logging.ZapLogger
	web    *web.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewProduction(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	m := metrics.New()
	svc := share.NewService(store, logger, m, c.MaxUploadBytes)

	if c.CognitoClientID == "" || c.CognitoDomain == "" {
		logger.Warn(ctx, "identity provider is not configured, sign-in will fail")
	}
	provider := identity.NewCognitoProvider(c)

	ws, err := web.NewServer(c, logger, svc, provider, m)
	if err != nil {
		return nil, fmt.Errorf("web server init error: %w", err)
	}

	return &App{config: c, logger: logger, web: ws}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is canceled, a termination signal arrives or the web
// server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.ListenAddr, "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	_ = app.logger.Sync()
}
