package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/config"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/notify"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/platform/postgres"
	"github.com/kmazurek/teachme-api/internal/service"
	"github.com/kmazurek/teachme-api/internal/store"
	"github.com/kmazurek/teachme-api/internal/task"
)

// application holds the shared application dependencies so startup, routing,
// and shutdown all work off one wiring.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	lessonStore   store.LessonStore
	questionStore store.QuestionStore
	prefStore     store.PreferenceStore

	eventEmitter *events.InMemoryEmitter
	dispatcher   notify.Dispatcher
	taskRunner   *task.Runner

	catalogService    service.CatalogService
	questionService   service.QuestionService
	preferenceService service.PreferenceService
	sessionService    service.SessionService
}

// newApplication loads configuration and wires every component together:
// config, logger, database, stores, the notification pipeline, and the
// services behind the HTTP handlers.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		return nil, err
	}

	app := &application{
		config: cfg,
		logger: log,
		db:     db,

		lessonStore:   postgres.NewPostgresLessonStore(db, log),
		questionStore: postgres.NewPostgresQuestionStore(db, log),
		prefStore:     postgres.NewPostgresPreferenceStore(db, log),
	}

	if err := app.setupNotificationPipeline(); err != nil {
		return nil, err
	}
	if err := app.setupServices(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupNotificationPipeline builds the emitter, the dispatcher, and the task
// runner, and registers the handler that turns lesson-added events into
// background notification tasks.
func (app *application) setupNotificationPipeline() error {
	app.eventEmitter = events.NewInMemoryEmitter(app.logger)

	if app.config.Notification.AMQPURL != "" {
		dispatcher, err := notify.NewAMQPDispatcher(
			app.config.Notification.AMQPURL,
			app.config.Notification.Exchange,
			app.logger,
		)
		if err != nil {
			return fmt.Errorf("failed to connect notification dispatcher: %w", err)
		}
		app.dispatcher = dispatcher
	} else {
		app.logger.Info("No AMQP URL configured, using log-only notification dispatcher")
		app.dispatcher = notify.NewLogDispatcher(app.logger)
	}

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)

	factory, err := task.NewNotificationTaskFactory(app.dispatcher, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create notification task factory: %w", err)
	}

	handler := task.NewNotificationEventHandler(factory, app.taskRunner, app.logger)
	app.eventEmitter.RegisterHandler(handler)
	return nil
}

// setupServices wires the application services over the stores and the
// event emitter.
func (app *application) setupServices() error {
	txRunner := service.NewTxRunner(app.db)

	catalog, err := service.NewCatalogService(
		app.lessonStore,
		app.questionStore,
		app.prefStore,
		txRunner,
		app.eventEmitter,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog service: %w", err)
	}
	app.catalogService = catalog

	questions, err := service.NewQuestionService(app.questionStore, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create question service: %w", err)
	}
	app.questionService = questions

	preferences, err := service.NewPreferenceService(app.prefStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create preference service: %w", err)
	}
	app.preferenceService = preferences

	sessions, err := service.NewSessionService(
		app.lessonStore,
		app.questionStore,
		catalog,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}
	app.sessionService = sessions

	return nil
}

// run seeds the catalog, starts the task runner, and serves HTTP until
// shutdown.
func (app *application) run(ctx context.Context) error {
	app.taskRunner.Start()

	if err := app.catalogService.SeedIfEmpty(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases the application's long-lived resources. Safe to call
// once after the HTTP server has stopped.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if closer, ok := app.dispatcher.(*notify.AMQPDispatcher); ok {
		closer.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
