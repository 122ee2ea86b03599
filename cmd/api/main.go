package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wellnexa/backend/internal/analysis/response"
	"github.com/wellnexa/backend/internal/config"
	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/internal/handler"
	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/internal/model/resource"
	"github.com/wellnexa/backend/internal/service/booking"
	"github.com/wellnexa/backend/internal/service/chat"
)

const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, closeLog := config.SetupLogger(cfg.Log.File, cfg.Log.Level)
	defer closeLog()
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Debug("no .env file loaded, using system environment only", "error", envErr)
	}

	doc, err := content.Load(cfg.Content.Path)
	if err != nil {
		logger.Error("failed to load content", "path", cfg.Content.Path, "error", err)
		os.Exit(1)
	}
	if cfg.Content.Path != "" {
		logger.Info("content override loaded", "path", cfg.Content.Path)
	}

	chatService := chat.NewService()
	composer := chat.NewComposer(chatService, response.NewSelector(doc.Chat), chat.ComposerConfig{
		Delay:  cfg.Chat.ReplyDelay,
		Logger: logger,
	})
	counselors := counselor.NewMemoryStore(doc.Booking.Counselors)
	bookingService := booking.NewService(counselors, doc.Booking.Options, booking.LogSink{Logger: logger}, nil)

	if cfg.Chat.SessionIdleTTL > 0 {
		go chatService.RunSweeper(ctx, sweepInterval, cfg.Chat.SessionIdleTTL, logger)
	} else {
		logger.Info("session idle sweeping disabled")
	}

	router := handler.NewRouter(handler.Dependencies{
		Site:           doc.Site,
		Chats:          chatService,
		Composer:       composer,
		Counselors:     counselors,
		Resources:      resource.NewMemoryStore(doc.Resources),
		Bookings:       bookingService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	if err := startServer(ctx, logger, cfg.Server, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("WellNexa backend listening", "addr", addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
