// Package server wires the assistant backend together: it opens the
// database, applies migrations, builds the services and runs the HTTP API
// alongside the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/supreassistant/internal/logging"
	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/dmitrijs2005/supreassistant/internal/server/llm"
	"github.com/dmitrijs2005/supreassistant/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/supreassistant/internal/server/rest"
	"github.com/dmitrijs2005/supreassistant/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/supreassistant/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *rest.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	provider, err := llm.New(c)
	if err != nil {
		return nil, fmt.Errorf("llm init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, m, c)
	es := services.NewEventService(db, m)
	ns := services.NewNoteService(db, m)
	as := services.NewAttachmentService(db, m, c)
	cs, err := services.NewCompanionService(db, m, provider, es, ns, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("companion init error: %w", err)
	}

	if !c.AttachmentsEnabled() {
		logger.Info(ctx, "S3 bucket not configured, note attachments disabled")
	}

	httpServer := rest.NewServer(c.EndpointAddrHTTP, logger, c.SecretKey, rest.Services{
		Users:       us,
		Events:      es,
		Notes:       ns,
		Companions:  cs,
		Attachments: as,
		DB:          db,
	})
	healthServer := gs.NewHealthServer(c.EndpointAddrGRPC, logger, db, c.HealthCheckInterval)

	return &App{config: c, logger: logger, db: db, http: httpServer, health: healthServer}, nil
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

// serve runs one server and cancels the whole app if it fails.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.health.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
