package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tipster-bot/internal/config"
	"tipster-bot/internal/fulfillment"
	"tipster-bot/internal/invoices"
	"tipster-bot/internal/logger"
	"tipster-bot/internal/payments"
	"tipster-bot/internal/server"
	"tipster-bot/internal/sheets"
	"tipster-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zaplog, err := logger.NewZapLog(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zaplog.Sync()

	payProvider, err := payments.NewProvider(cfg, zaplog)
	if err != nil {
		zaplog.Fatal("payments", zap.Error(err))
	}

	// Optional weekly-results source for the Rezultatai screen.
	var results *sheets.Client
	if cfg.SpreadsheetID != "" && cfg.GoogleServiceAccountJSON != "" {
		results, err = sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			zaplog.Fatal("sheets", zap.Error(err))
		}
	}

	book := invoices.NewBook()
	creator := invoices.NewCreator(payProvider, book, zaplog)

	botApp, err := tgbot.New(cfg, creator, results, zaplog)
	if err != nil {
		zaplog.Fatal("telegram", zap.Error(err))
	}

	worker := fulfillment.NewWorker(64, botApp, zaplog)
	httpSrv := server.New(cfg, payProvider, book, worker, zaplog)

	ctx, cancel := context.WithCancel(context.Background())

	// Fulfillment worker
	go worker.Run(ctx)

	// HTTP server (webhook receiver)
	go func() {
		zaplog.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zaplog.Fatal("http server", zap.Error(err))
		}
	}()

	// Telegram long polling
	go func() {
		zaplog.Info("starting Telegram polling")
		if err := botApp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zaplog.Error("bot stopped", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	zaplog.Info("shutting down...")

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	zaplog.Info("bye")
}
