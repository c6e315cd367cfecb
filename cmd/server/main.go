// Command server runs the chatbridge gateway: an OpenAI-compatible chat
// completions front for a single-turn prompt completion backend.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, CHATBRIDGE_CONFIG, ./config.yaml, /etc/chatbridge/config.yaml),
// then CHATBRIDGE_* environment variables. A local .env file is loaded
// first when present. CHATBRIDGE_BACKEND_URL (or backend.url) is required.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/chatbridge-dev/chatbridge/pkg/config"
	"github.com/chatbridge-dev/chatbridge/pkg/debug"
	"github.com/chatbridge-dev/chatbridge/pkg/engine"
	"github.com/chatbridge-dev/chatbridge/pkg/provider/promptapi"
	transporthttp "github.com/chatbridge-dev/chatbridge/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	prov, err := promptapi.New(promptapi.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	defer prov.Close()

	eng, err := engine.New(prov, engine.Config{
		DefaultModel: cfg.Engine.DefaultModel,
		StreamDelay:  cfg.Engine.StreamDelay,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	serverCfg := transporthttp.DefaultServerConfig()
	serverCfg.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
	serverCfg.ReadTimeout = cfg.Server.ReadTimeout
	serverCfg.WriteTimeout = cfg.Server.WriteTimeout
	serverCfg.AllowedOrigins = cfg.CORS.AllowedOrigins
	serverCfg.MetricsEnabled = cfg.Observability.Metrics.Enabled
	serverCfg.MetricsPath = cfg.Observability.Metrics.Path
	serverCfg.DefaultModel = cfg.Engine.DefaultModel

	srv := transporthttp.NewServer(eng, serverCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("gateway configured",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"model", cfg.Engine.DefaultModel,
		"stream_delay", cfg.Engine.StreamDelay,
	)
	return srv.ListenAndServe(ctx)
}
