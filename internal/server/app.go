// Package server initializes and runs the blog API server.
// It selects the storage backend, applies migrations, wires services and
// the HTTP transport, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/rest"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
	"github.com/dmitrijs2005/blogkeeper/internal/telemetry"
)

const (
	serviceName  = "blogkeeper"
	closeTimeout = 5 * time.Second
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	repos             repomanager.RepositoryManager
	httpServer        *rest.HTTPServer
	shutdownTelemetry func(context.Context) error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.UsesDefaultSecrets() {
		logger.Warn(ctx, "JWT secrets are set to public development defaults; override JWT_SECRET and JWT_REFRESH_SECRET")
	}

	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdown, err := telemetry.Setup(ctx, serviceName, c.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		_ = shutdown(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService(c, rm.RefreshTokens())
	svc := rest.Services{
		Tokens:   tokens,
		Auth:     services.NewAuthService(rm, tokens, logger),
		Users:    services.NewUserService(rm, tokens, logger),
		Posts:    services.NewPostService(rm, logger),
		Comments: services.NewCommentService(rm, logger),
	}

	hs := rest.NewHTTPServer(c.EndpointAddrHTTP, c.AllowedOrigins, logger, svc)

	logger.Info(ctx, "Storage ready", "backend", c.Storage)

	return &App{config: c, logger: logger, repos: rm, httpServer: hs, shutdownTelemetry: shutdown}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server error", "error", err)
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled, then
// releases storage and flushes traces.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
}

func (app *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.repos.Close(ctx); err != nil {
		app.logger.Error(ctx, "Error closing storage", "error", err)
	}
	if err := app.shutdownTelemetry(ctx); err != nil {
		app.logger.Error(ctx, "Error flushing traces", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
