package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/pkg/otel"
	"github.com/adrianliechti/mineru/server"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "", "config file (default: MINERU_API_KEY / MINERU_BASE_URL)")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo

	if otel.EnableDebug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if otel.EnableTelemetry {
		shutdown, err := otel.Setup(ctx, "mineru-server", version)

		if err != nil {
			panic(err)
		}

		defer shutdown(context.Background())
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		panic(err)
	}

	defer cfg.Close()

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		panic(err)
	}

	slog.Info("server listening", "address", cfg.Address)

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
