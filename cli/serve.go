// Package cli implements the stepgraph subcommands.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstep/config"
	"github.com/katalvlaran/lvstep/server"
	"github.com/katalvlaran/lvstep/session"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the step-by-step traversal HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().String("config", "", "Path to "+config.FileName)
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().String("store", "", "Session store: memory, badger or sqlite (overrides store.driver)")
	cmd.Flags().String("store-path", "", "Badger directory or SQLite file (overrides store.path)")
	cmd.Flags().String("cors-origin", "", "Allowed CORS origin (overrides server.cors_origin)")

	return cmd
}

// serveConfig loads the config file and applies flag overrides.
func serveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"addr", &cfg.Server.Addr},
		{"store", &cfg.Store.Driver},
		{"store-path", &cfg.Store.Path},
		{"cors-origin", &cfg.Server.CORSOrigin},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dst, _ = cmd.Flags().GetString(o.flag)
		}
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Log, cmd.ErrOrStderr())

	store, err := session.Open(session.Options{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		TTL:           cfg.Store.SessionTTL,
		SweepInterval: cfg.Store.SweepInterval,
		Logger:        logger.With("component", "session-store"),
	})
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("closing session store", "error", cerr)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Options{
		Store:        store,
		Logger:       logger,
		CORSOrigin:   cfg.Server.CORSOrigin,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		RunLimits:    server.RunLimits{MaxNodes: cfg.Server.MaxRunNodes, MaxEdges: cfg.Server.MaxRunEdges},
		Registry:     prometheus.NewRegistry(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting stepgraph",
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Driver,
		"session_ttl", cfg.Store.SessionTTL,
	)

	return server.New(cfg.Server.Addr, router, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger).Run(ctx)
}
