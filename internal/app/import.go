package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/auth"
	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
	"github.com/muhtegaralfikri/bbi-backend/internal/cache"
	"github.com/muhtegaralfikri/bbi-backend/internal/cli"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
	"github.com/muhtegaralfikri/bbi-backend/internal/importer"
	"github.com/muhtegaralfikri/bbi-backend/internal/logging"
	"github.com/muhtegaralfikri/bbi-backend/internal/translation"
)

func runImport(args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	file := fs.String("file", "", "Path to the berita import JSON file")
	adminEmail := fs.String("admin", "", "Email of the admin to attribute imported berita to")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "import does not accept positional arguments")
		return 2
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "--file is required")
		return 2
	}
	if *adminEmail == "" {
		fmt.Fprintln(os.Stderr, "--admin is required")
		return 2
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read import file: %v\n", err)
		return 1
	}

	payload, err := importer.ParsePayload(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid import payload: %v\n", err)
		return 1
	}

	ctx, cancel, pool, cfg, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	admin, err := pool.GetAdminByEmail(ctx, auth.NormalizeEmail(*adminEmail))
	if err != nil {
		if db.IsNoRows(err) {
			fmt.Fprintf(os.Stderr, "Admin %s not found\n", *adminEmail)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to look up admin: %v\n", err)
		}
		return 1
	}

	contentCache := cache.NewFromConfig(cfg, logger)
	defer contentCache.Close()

	translator := translation.NewTranslatorFromConfig(cfg, logger)
	service := berita.NewService(pool, contentCache, translator, logger, berita.Options{
		CacheTTL:   cfg.CacheTTL,
		TargetLang: cfg.TranslateTarget,
	})

	summary, err := importer.New(service, logger, admin.ID).Run(ctx, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		return 1
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode summary: %v\n", err)
		return 1
	}

	if summary.Failed > 0 {
		return 1
	}
	return 0
}
