package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
	"github.com/muhtegaralfikri/bbi-backend/internal/cache"
	"github.com/muhtegaralfikri/bbi-backend/internal/cli"
	"github.com/muhtegaralfikri/bbi-backend/internal/config"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/httpapi"
	"github.com/muhtegaralfikri/bbi-backend/internal/logging"
	"github.com/muhtegaralfikri/bbi-backend/internal/translation"
	"github.com/muhtegaralfikri/bbi-backend/internal/upload"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8080, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	pool, err := db.NewPool(dbCtx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("serve failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	contentCache := cache.NewFromConfig(cfg, logger)
	defer contentCache.Close()

	translator := translation.NewTranslatorFromConfig(cfg, logger)

	beritaService := berita.NewService(pool, contentCache, translator, logger, berita.Options{
		CacheTTL:   cfg.CacheTTL,
		TargetLang: cfg.TranslateTarget,
	})

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.UploadMaxSize)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.UploadDir).Msg("serve failed to prepare upload directory")
		fmt.Fprintf(os.Stderr, "Failed to prepare upload directory: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	srv := httpapi.NewServer(pool, beritaService, uploads, logger, httpapi.Options{
		Host:            *host,
		Port:            *port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
		SessionCookie:   cfg.SessionCookieName,
		SessionSecure:   cfg.SessionCookieSecure,
		SessionTTL:      cfg.SessionTTL(),
		AllowedOrigins:  cfg.CORSAllowedOriginsList(),
		UploadDir:       cfg.UploadDir,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}
