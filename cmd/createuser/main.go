package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/config"
	"jobtracker/internal/database"
	"jobtracker/internal/observability"
	"jobtracker/internal/repository/sqlstore"
)

func main() {
	email := flag.String("email", "", "email address of the user")
	password := flag.String("password", "", "password, at least 8 characters")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createuser -email you@example.com -password secret123")
		os.Exit(2)
	}
	if err := run(*email, *password); err != nil {
		if appErr, ok := common.As(err); ok && len(appErr.Messages) > 0 {
			for _, msg := range appErr.Messages {
				fmt.Fprintln(os.Stderr, msg)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, dialect, err := database.Open(ctx, database.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL, MaxOpenConns: 1}, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return err
		}
	}

	auth := app.NewAuthService(sqlstore.New(db, dialect), logger, cfg.SessionTTL)
	created, err := auth.CreateUser(ctx, email, password)
	if err != nil {
		return err
	}
	logger.Info("user created", slog.Int64("user_id", created.ID), slog.String("email_address", created.EmailAddress))
	return nil
}
