package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/auth"
	"github.com/muhtegaralfikri/bbi-backend/internal/cli"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
)

func runCreateAdmin(args []string) int {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	email := fs.String("email", "", "Admin email address")
	password := fs.String("password", "", "Admin password")
	nama := fs.String("nama", "", "Admin full name")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "create-admin does not accept positional arguments")
		return 2
	}

	normalizedEmail := auth.NormalizeEmail(*email)
	namaLengkap := strings.TrimSpace(*nama)
	if normalizedEmail == "" || !strings.Contains(normalizedEmail, "@") {
		fmt.Fprintln(os.Stderr, "--email must be a valid email address")
		return 2
	}
	if namaLengkap == "" {
		fmt.Fprintln(os.Stderr, "--nama is required")
		return 2
	}

	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid password: %v\n", err)
		return 2
	}

	ctx, cancel, pool, _, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	if _, err := pool.GetAdminByEmail(ctx, normalizedEmail); err == nil {
		fmt.Fprintf(os.Stderr, "Admin %s already exists\n", normalizedEmail)
		return 1
	} else if !db.IsNoRows(err) {
		fmt.Fprintf(os.Stderr, "Failed to check existing admin: %v\n", err)
		return 1
	}

	existing, err := pool.CountAdmins(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count admins: %v\n", err)
		return 1
	}

	admin := &db.Admin{
		NamaLengkap:  namaLengkap,
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
	}
	if err := pool.CreateAdmin(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		return 1
	}

	if existing == 0 {
		fmt.Printf("Created first admin %s (%s)\n", normalizedEmail, admin.ID)
	} else {
		fmt.Printf("Created admin %s (%s)\n", normalizedEmail, admin.ID)
	}
	return 0
}
