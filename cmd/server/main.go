package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder-dkr/doomswear/configs"
	"github.com/coder-dkr/doomswear/internal/checkout"
	"github.com/coder-dkr/doomswear/internal/handlers"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/notify"
	"github.com/coder-dkr/doomswear/internal/payment"
	"github.com/coder-dkr/doomswear/internal/routes"
	"github.com/coder-dkr/doomswear/internal/seed"
	"github.com/coder-dkr/doomswear/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()

	st, err := store.Open(configs.AppConfig.DB.DSN)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := st.Migrate(); err != nil {
		logger.Log.Fatal("migrations failed", zap.Error(err))
	}
	seed.Run(st)

	var notifier notify.Notifier = notify.LogNotifier{}
	if smtp := configs.AppConfig.SMTP; smtp.Host != "" && smtp.Password != "" {
		mailer, err := notify.NewMailer(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From)
		if err != nil {
			logger.Log.Fatal("failed to configure mailer", zap.Error(err))
		}
		notifier = mailer
	}

	gateway := payment.NewSimulator(uint64(time.Now().UnixNano()))
	coordinator := checkout.New(st, gateway, notifier)
	router := routes.NewRoutes(handlers.New(st, coordinator))

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	st.Close()
	logger.Log.Info("server stopped")
}
