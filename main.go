package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/dskvich/capture-telegram-bot/pkg/api"
	"github.com/dskvich/capture-telegram-bot/pkg/auth"
	"github.com/dskvich/capture-telegram-bot/pkg/capture"
	"github.com/dskvich/capture-telegram-bot/pkg/database"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
	"github.com/dskvich/capture-telegram-bot/pkg/ratelimit"
	"github.com/dskvich/capture-telegram-bot/pkg/repository"
	"github.com/dskvich/capture-telegram-bot/pkg/services"
	"github.com/dskvich/capture-telegram-bot/pkg/telegram"
	"github.com/dskvich/capture-telegram-bot/pkg/workers"
)

type Config struct {
	Port                   string        `env:"PORT" envDefault:"5000"`
	ServerURL              string        `env:"SERVER_URL"`
	ScreenshotBotName      string        `env:"SCREENSHOT_BOT_NAME" envDefault:"puppeteer_screenshot"`
	ScreenshotBotToken     string        `env:"TOKEN_PUPPETEER_SCREENSHOT,required,notEmpty"`
	TelegramAPIEndpoint    string        `env:"TELEGRAM_API_ENDPOINT"`
	AuthorizedChatIDs      []int64       `env:"AUTHORIZED_CHAT_IDS" envSeparator:" "`
	PgURL                  string        `env:"DATABASE_URL"`
	ChromePath             string        `env:"CHROME_PATH"`
	CaptureTimeout         time.Duration `env:"CAPTURE_TIMEOUT" envDefault:"60s"`
	CaptureConcurrency     int           `env:"CAPTURE_CONCURRENCY" envDefault:"4"`
	CaptureRateLimitPerMin int           `env:"CAPTURE_RATE_LIMIT_PER_MIN" envDefault:"10"`
	LogLevel               slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	LogNoColor             bool          `env:"LOG_NO_COLOR"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Loading .env file", logger.Err(err))
	}

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Invalid configuration", logger.Err(err))
		os.Exit(1)
	}

	opts := logger.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.NoColor = cfg.LogNoColor
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, opts)))

	if err := runMain(cfg); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func loadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	if cfg.CaptureTimeout <= 0 {
		return Config{}, fmt.Errorf("CAPTURE_TIMEOUT must be positive, got %s", cfg.CaptureTimeout)
	}
	return cfg, nil
}

func runMain(cfg Config) error {
	workerGroup, closeFn, err := setupWorkers(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers(cfg Config) (workers.Group, func(), error) {
	var db *sql.DB
	closeFn := func() {}

	if cfg.PgURL != "" {
		var err error
		if db, err = database.NewPostgres(cfg.PgURL); err != nil {
			return nil, nil, fmt.Errorf("creating db: %w", err)
		}
		closeFn = func() {
			if err := db.Close(); err != nil {
				slog.Error("closing db", logger.Err(err))
			}
		}
	} else {
		slog.Warn("DATABASE_URL is not set, chat state is kept in memory")
	}

	screenshotBot, captures, err := newScreenshotBot(cfg, db)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	bots := []api.Bot{screenshotBot}

	workerGroup := workers.Group{
		workers.NewHTTPServer(":"+cfg.Port, api.NewRouter(bots)),
		workers.NewCaptureDrainer(captures),
	}

	if cfg.ServerURL != "" {
		workerGroup = append(workerGroup, workers.NewWebhookRegistrar(cfg.ServerURL, bots))
	}

	return workerGroup, closeFn, nil
}

func newScreenshotBot(cfg Config, db *sql.DB) (api.Bot, workers.CaptureJobs, error) {
	name := cfg.ScreenshotBotName

	telegramClient, err := telegram.NewClient(cfg.ScreenshotBotToken, cfg.TelegramAPIEndpoint)
	if err != nil {
		return api.Bot{}, nil, fmt.Errorf("creating telegram client for %s: %w", name, err)
	}

	var (
		updatesRepository  services.UpdatesRepository
		settingsRepository services.SettingsRepository
	)
	if db != nil {
		updatesRepository = repository.NewUpdatesRepository(db, name)
		settingsRepository = repository.NewSettingsRepository(db, name)
	} else {
		updatesRepository = repository.NewMemoryUpdatesRepository(name)
		settingsRepository = repository.NewMemorySettingsRepository(name)
	}

	var limiter services.RateLimiter
	if cfg.CaptureRateLimitPerMin > 0 {
		limiter = ratelimit.NewLimiter(cfg.CaptureRateLimitPerMin)
	}

	settingsService := services.NewSettingsService(settingsRepository)

	captureService := services.NewCaptureService(
		capture.NewBrowser(cfg.ChromePath),
		settingsService,
		telegramClient,
		limiter,
		cfg.CaptureTimeout,
		cfg.CaptureConcurrency,
	)

	handler := telegram.NewHandler(
		services.NewDeduplicator(updatesRepository),
		services.NewMenuService(settingsService, telegramClient),
		captureService,
		telegramClient,
		auth.NewAuthenticator(cfg.AuthorizedChatIDs),
	)

	return api.Bot{
		Name:      name,
		Token:     cfg.ScreenshotBotToken,
		Handler:   handler,
		Registrar: telegramClient,
	}, captureService, nil
}
