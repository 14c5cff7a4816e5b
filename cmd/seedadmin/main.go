// Command seedadmin migrates the schema and ensures a main admin account
// exists. With -demo it also loads the sample sports, fixtures, events and
// gallery images into an empty database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/app"
	"github.com/charlesng35/kurukshetra/internal/database"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/crypto"
	"github.com/charlesng35/kurukshetra/pkg/logger"
)

const generatedPasswordBytes = 12

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("kurukshetra-seedadmin", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		configPath string
		demo       bool
		username   string
		email      string
		password   string
	)
	fs.StringVar(&configPath, "config", "", "Directory containing config.yaml")
	fs.BoolVar(&demo, "demo", false, "Also insert demo sports, matches, events and gallery images")
	fs.StringVar(&username, "username", "", "Admin username (defaults to bootstrap.admin.username)")
	fs.StringVar(&email, "email", "", "Admin email (defaults to bootstrap.admin.email)")
	fs.StringVar(&password, "password", "", "Admin password (defaults to bootstrap.admin.password, generated when empty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var paths []string
	if strings.TrimSpace(configPath) != "" {
		paths = append(paths, configPath)
	}
	cfg, err := app.LoadConfig(paths...)
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel, cfg.Server.LogFormat); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort
	log := logger.WithModule("seedadmin")

	admin := cfg.Bootstrap.Admin
	admin.Username = firstNonEmpty(username, admin.Username)
	admin.Email = firstNonEmpty(email, admin.Email)
	admin.Password = firstNonEmpty(password, admin.Password)

	generated := false
	if admin.Password == "" {
		if admin.Password, err = crypto.GenerateToken(generatedPasswordBytes); err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		generated = true
	}

	db, err := database.Open(cfg.Database.ConnectionConfig())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrateAndSeed(db, demo || cfg.Database.SeedDemo); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	users, err := services.NewUserService(db, nil)
	if err != nil {
		return err
	}

	user, created, err := users.EnsureMainAdmin(ctx, services.CreateUserInput{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
	})
	if err != nil {
		return fmt.Errorf("ensure main admin: %w", err)
	}

	if !created {
		log.Info("main admin already present", zap.String("email", user.Email))
		fmt.Fprintf(out, "Main admin already exists: %s\n", user.Email)
		return nil
	}

	log.Info("main admin created", zap.String("user_id", user.ID), zap.String("email", user.Email))
	fmt.Fprintf(out, "Created main admin %s (%s)\n", user.Username, user.Email)
	if generated {
		fmt.Fprintf(out, "Generated password: %s\n", admin.Password)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
