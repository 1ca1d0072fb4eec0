package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wellywell/safetap/internal/auth"
	"github.com/wellywell/safetap/internal/config"
	"github.com/wellywell/safetap/internal/db"
	"github.com/wellywell/safetap/internal/handlers"
	"github.com/wellywell/safetap/internal/provider"
	"github.com/wellywell/safetap/internal/router"
	"github.com/wellywell/safetap/internal/verify"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logger.Fatal(err)
	}

	level, err := logger.ParseLevel(conf.LogLevel)
	if err != nil {
		logger.Fatal(err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logger.JSONFormatter{})

	database, err := db.NewDatabase(conf.DatabaseDSN)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = bootstrapAdmin(ctx, database, conf)
	if err != nil {
		logger.Fatal(err)
	}

	handlerSet := handlers.NewHandlerSet(conf.Secret, conf.AuthCookieExpiresIn, database)
	r := router.NewRouter(conf, handlerSet)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.ListenAndServe(ctx)
	})
	if conf.PaymentProviderAddress != "" {
		client := provider.NewClient(conf.PaymentProviderAddress)
		g.Go(func() error {
			return verify.Run(ctx, database, client, conf.VerifyInterval)
		})
	} else {
		logger.Warning("No payment provider configured, pending payments must be confirmed by hand")
	}

	err = g.Wait()
	if err != nil {
		logger.Error(err)
		return
	}
}

func bootstrapAdmin(ctx context.Context, database *db.Database, conf *config.ServerConfig) error {
	if conf.AdminLogin == "" || conf.AdminPassword == "" {
		return nil
	}
	hashed, err := auth.HashPassword(conf.AdminPassword)
	if err != nil {
		return err
	}
	err = database.CreateAdmin(ctx, conf.AdminLogin, hashed)
	var exists *db.UserExistsError
	if errors.As(err, &exists) {
		return nil
	}
	if err == nil {
		logger.Infof("Created admin %s", conf.AdminLogin)
	}
	return err
}
