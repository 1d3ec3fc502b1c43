// Package server initializes and runs the taskboard application server:
// it opens the database, runs migrations, wires the services, handles
// graceful shutdown, and starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	serverhttp "github.com/dmitrijs2005/taskboard/internal/server/http"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	accountService *services.AccountService
	contactService *services.ContactService
	taskService    *services.TaskService
	subtaskService *services.SubtaskService
}

func NewApp(c *config.Config) (*App, error) {

	jsonLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(jsonLogger)

	db, err := repomanager.OpenDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:         c,
		logger:         logger,
		accountService: services.NewAccountService(db, m, c),
		contactService: services.NewContactService(db, m),
		taskService:    services.NewTaskService(db, m),
		subtaskService: services.NewSubtaskService(db, m),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := serverhttp.NewServer(app.config.EndpointAddr, app.logger,
		app.accountService, app.contactService, app.taskService, app.subtaskService,
		app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
