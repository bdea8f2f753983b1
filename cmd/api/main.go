// Command api runs the admin-users HTTP service.
//
// @title                      I-Wellness admin-users API
// @version                    1.0
// @description                Identity, registration and password reset service.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	_ "github.com/iwellness/admin-users/docs"
	"github.com/iwellness/admin-users/internal/api"
	"github.com/iwellness/admin-users/internal/api/handler"
	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
	"github.com/iwellness/admin-users/internal/core/security"
	"github.com/iwellness/admin-users/internal/core/service"
	mongodb "github.com/iwellness/admin-users/internal/infrastructure/db/mongo"
	redisdb "github.com/iwellness/admin-users/internal/infrastructure/db/redis"
	"github.com/iwellness/admin-users/internal/infrastructure/mail"
	"github.com/iwellness/admin-users/internal/infrastructure/queue"
	"github.com/iwellness/admin-users/internal/pkg/config"
	"github.com/iwellness/admin-users/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "admin-users",
	})

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	roles := mongodb.NewRoleRepository(db)
	if cfg.Mongo.SeedRoles {
		if err := roles.Seed(ctx, domain.RoleCatalog); err != nil {
			return err
		}
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	identities := mongodb.NewIdentityRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	tx := mongodb.NewTransactor(mongoClient)

	// --- Security ---
	hasher, err := security.NewHasher(cfg.Auth.PasswordHasher)
	if err != nil {
		return err
	}
	tokens, err := security.NewTokenService(security.TokenConfig{Secret: []byte(cfg.Auth.JWTSecret), TTL: cfg.Auth.JWTTTL})
	if err != nil {
		return err
	}

	// --- Notifications ---
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, redisdb.NewPublisher(rdb), log)
	// Detached from ctx so queued notifications drain after a shutdown signal.
	dispatcher.Start(context.Background())
	defer dispatcher.Close()

	var mailer ports.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	// --- Services ---
	authService := service.NewAuthService(identities, profiles, hasher, tokens, log)
	registrationService := service.NewRegistrationService(identities, roles, profiles, tx, hasher, authService, dispatcher, log)
	resetService := service.NewPasswordResetService(identities, redisdb.NewResetTokenStore(rdb), hasher, mailer,
		cfg.Auth.ResetLinkBase, cfg.Auth.ResetTTL, log)
	userService := service.NewUserService(identities, profiles, tx, log)

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Registration: registrationService,
		Resets:       resetService,
		Users:        userService,
		Tokens:       tokens,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error {
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": func(ctx context.Context) error {
				return redisdb.Ping(ctx, rdb, 2*time.Second)
			},
		},
		Log: log,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	return nil
}
