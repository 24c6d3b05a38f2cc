// Command admin_seed creates the operator account used by the admin routes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"petquote/internal/config"
	"petquote/internal/models"
	"petquote/internal/repositories"
	"petquote/internal/services/auth"
	applog "petquote/internal/utils/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	applog.Setup(cfg.LogLevel, cfg.IsProduction())

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}
}

func run(cfg config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}
	if !cfg.DatabaseEnabled() {
		return errors.New("DB_HOST must be set in environment")
	}

	db, err := repositories.InitDB(repositories.DBConfig{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		Name:            cfg.DBName,
		MaxIdleConns:    2,
		MaxOpenConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	operators := repositories.NewOperatorRepository(db)
	if _, err := operators.GetByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("email", adminEmail).Msg("operator already exists")
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("look up operator: %w", err)
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	operator := &models.Operator{
		Email:        adminEmail,
		Password:     hashedPassword,
		TokenVersion: 1,
	}
	if err := operators.Create(ctx, operator); err != nil {
		return fmt.Errorf("create operator: %w", err)
	}

	log.Info().Uint("operator_id", operator.ID).Str("email", adminEmail).Msg("operator account created")
	return nil
}
