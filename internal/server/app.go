// Package server initializes and runs the authentication service. It wires
// the database, the domain services, the HTTP surface and the periodic
// background drivers, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ViniciusHP/autenticacao-api/internal/logging"
	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
	"github.com/ViniciusHP/autenticacao-api/internal/server/httpapi"
	"github.com/ViniciusHP/autenticacao-api/internal/server/mail"
	"github.com/ViniciusHP/autenticacao-api/internal/server/oauth"
	"github.com/ViniciusHP/autenticacao-api/internal/server/passwordreset"
	"github.com/ViniciusHP/autenticacao-api/internal/server/scheduler"
	"github.com/ViniciusHP/autenticacao-api/internal/server/shared/db"
	"github.com/ViniciusHP/autenticacao-api/internal/server/token"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
	sweeper    *scheduler.ResetSweeper
	dispatcher *scheduler.EmailDispatcher
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	clock := timex.SystemClock{}

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec, err := token.NewCodec(cfg.JWT, clock)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	renderer, err := mail.NewRecoveryRenderer(cfg.PasswordReset.URL)
	if err != nil {
		return nil, fmt.Errorf("recovery template init error: %w", err)
	}

	resetService := passwordreset.NewService(rm.PasswordResets(), clock, cfg.ResetTokenValidity())
	emailService := emails.NewService(rm.Emails(), cfg.Mail)
	userService := users.NewService(rm.Users(), resetService, emailService, renderer, logger)
	sessionManager := oauth.NewSessionManager(userService, userService, codec, cfg)

	httpServer := httpapi.NewHTTPServer(cfg, sessionManager, userService, codec, userService, logger)

	sweeper := scheduler.NewResetSweeper(resetService, logger, cfg.SweepInterval, cfg.SweepBatchSize)
	dispatcher := scheduler.NewEmailDispatcher(emailService, mail.NewSMTPSender(cfg.Mail), clock, logger,
		cfg.MailDispatchInterval, cfg.MailDispatchBatchSize)

	return &App{
		config:     cfg,
		logger:     logger,
		httpServer: httpServer,
		sweeper:    sweeper,
		dispatcher: dispatcher,
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sweeper.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.dispatcher.Run(ctx)
	}()

	wg.Wait()
}
