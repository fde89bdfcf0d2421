package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	corecfg "github.com/aevon-lab/overseer/internal/core/config"
	"github.com/aevon-lab/overseer/internal/core/policy"
	"github.com/aevon-lab/overseer/internal/ingestion"
	"github.com/aevon-lab/overseer/internal/server"
	"github.com/aevon-lab/overseer/internal/supervisor"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "overseer.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Bootstrap logger until the configured one is known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("Loaded config", "config", cfg)

	// 2. Resolve Policy
	initial, err := loadPolicy(cfg.Supervisor)
	if err != nil {
		slog.Error("Failed to load policy", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Audit Sink
	auditSink, checks, err := buildSink(cfg.Sink)
	if err != nil {
		slog.Error("Failed to initialize audit sink", "type", cfg.Sink.Type, "error", err)
		os.Exit(1)
	}

	// 4. Initialize Supervisor
	sup := supervisor.New(supervisor.Options{
		Policy: &initial,
		Sink:   auditSink,
	})

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, checks)
	ingestion.NewService(sup, cfg.Server.MaxBodySizeMB).RegisterRoutes(srv.Engine)

	// 6. Start Services; a signal cancels ctx and triggers the shutdown sequence below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// HTTP server blocks until gctx is cancelled.
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Signal received, shutting down...")
		sup.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	// Drain queued audit lines before exiting.
	if err := auditSink.Close(); err != nil {
		slog.Error("Failed to close audit sink", "error", err)
	}

	slog.Info("Shutdown complete")
}

func newLogger(cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// loadPolicy applies the policy file and the history limit override over the
// defaults.
func loadPolicy(cfg corecfg.SupervisorConfig) (v1.Policy, error) {
	store := policy.NewStore(policy.Defaults())

	f, err := policy.LoadFile(cfg.PolicyFile)
	if err != nil {
		return v1.Policy{}, err
	}
	if !f.Patch.Empty() {
		applied := store.Apply(f.Patch)
		slog.Info("Policy file applied",
			"path", f.Path,
			"sha256", f.Fingerprint,
			"fields", applied)
	}

	if cfg.HistoryLimit > 0 {
		limit := cfg.HistoryLimit
		store.Apply(v1.PolicyPatch{HistoryLimit: &limit})
	}

	return store.Current(), nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
