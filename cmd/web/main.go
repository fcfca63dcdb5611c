package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sdeery14/fitness-app-sub000/internal/coach"
	"github.com/sdeery14/fitness-app-sub000/internal/envstruct"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/flightrecorder"
	"github.com/sdeery14/fitness-app-sub000/internal/logging"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
	"github.com/sdeery14/fitness-app-sub000/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	planner        *planner.Service
	// agent is nil when no OpenAI API key is configured.
	agent       *coach.Agent
	summaryDays int
	// recorder is nil unless FITNESS_TRACES_DIR is set.
	recorder *flightrecorder.Recorder
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITNESS_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITNESS_SQLITE_URL" envDefault:"./fitness.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"FITNESS_TEMPLATE_PATH" envDefault:""`
	// SummaryDays is the number of upcoming days in schedule summaries.
	SummaryDays int `env:"FITNESS_SUMMARY_DAYS" envDefault:"14"`
	// ScheduleHorizon caps the schedule of plans without a target date.
	ScheduleHorizon time.Duration `env:"FITNESS_SCHEDULE_HORIZON" envDefault:"8760h"`
	// OpenAIAPIKey enables the coaching chat. The chat endpoint responds 503 without it.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel  string `env:"FITNESS_OPENAI_MODEL" envDefault:"gpt-4o"`
	// OpenAIBaseURL overrides the API endpoint, e.g. for a compatible proxy.
	OpenAIBaseURL string `env:"FITNESS_OPENAI_BASE_URL" envDefault:""`
	// TracesDir enables the flight recorder. Requests that time out dump a runtime trace there.
	TracesDir string `env:"FITNESS_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveUIDir(cfg.TemplatePath, "templates"); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(context.Background(), slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	horizonDays := int(cfg.ScheduleHorizon / (24 * time.Hour)) //nolint:mnd // day
	service := planner.NewService(planner.NewSQLiteStore(db, logger), logger, planner.WithHorizonDays(horizonDays))

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	defer sessionStore.StopCleanup()

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(sessionStore),
		templateFS:     os.DirFS(htmlTemplatePath),
		planner:        service,
		agent:          newAgent(cfg, service, logger),
		summaryDays:    cfg.SummaryDays,
		recorder:       nil,
	}
	if cfg.TracesDir != "" {
		if app.recorder, err = flightrecorder.New(logger, flightrecorder.Config{
			Dir:      cfg.TracesDir,
			MinAge:   0,
			MaxBytes: 0,
			Cooldown: 0,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = app.recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.recorder.Stop(context.WithoutCancel(ctx))
	}

	handler, err := app.routes()
	if err != nil {
		return errors.Wrap(err, "configure routes")
	}
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// newAgent returns nil when the chat is disabled.
func newAgent(cfg config, service *planner.Service, logger *slog.Logger) *coach.Agent {
	if cfg.OpenAIAPIKey == "" {
		logger.LogAttrs(context.Background(), slog.LevelInfo, "OPENAI_API_KEY not set, coaching chat disabled")
		return nil
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	client := openai.NewClient(opts...)
	return coach.NewAgent(client, cfg.OpenAIModel, coach.NewToolbox(service, logger), logger)
}

func initializeSessionManager(store scs.Store) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = 30 * 24 * time.Hour  //nolint:mnd // a month
	sessionManager.IdleTimeout = 7 * 24 * time.Hour //nolint:mnd // a week
	sessionManager.Cookie.Name = "fitness_session"
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
