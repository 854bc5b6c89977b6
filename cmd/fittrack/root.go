// ABOUTME: Root Cobra command for the fittrack CLI.
// ABOUTME: Builds config, logger, store, cache and service in PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/united-manufacturing-hub/umh-utils/env"
	"github.com/united-manufacturing-hub/umh-utils/logger"
	"go.uber.org/zap"

	"github.com/harperreed/fittrack/internal/cache"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/store"
)

var (
	configPath string

	cfg        *config.Config
	log        *zap.SugaredLogger
	appMetrics *metrics.Metrics
	backend    store.Backend
	appCache   cache.Cache
	svc        *fitness.Service
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Workout, nutrition and body weight tracker",
	Long: `Fittrack tracks strength workouts, calorie intake and body weight, and serves
them over a GraphQL API.

QUICK START:

  $ fittrack user add "Alice" 72.5        # Create a user
  $ fittrack user list                    # List users
  $ fittrack serve                        # Start the GraphQL API on :4000
  $ fittrack export json <user-id>        # Export everything a user owns

WORKOUTS:

  $ fittrack workout list <user-id>                       # Newest first
  $ fittrack workout show <workout-id>                    # Exercises and sets
  $ fittrack workout schedule <user-id> 2024-07-01 <template-id>

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for use with
  MCP-compatible assistants:

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  Settings are read from ~/.config/fittrack/config.json (or --config) and
  overridden by FITTRACK_* environment variables. Data lives in
  ~/.local/share/fittrack by default.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsService(cmd) {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func needsService(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "migrate", "fittrack":
		return false
	}
	return true
}

func loadConfig() (*config.Config, error) {
	var (
		c   *config.Config
		err error
	)
	if configPath != "" {
		c, err = config.LoadFrom(config.ExpandPath(configPath))
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	return c, nil
}

func setup(cmd *cobra.Command) error {
	var err error
	if cfg, err = loadConfig(); err != nil {
		return err
	}

	level, _ := env.GetAsString("LOGGING_LEVEL", false, "PRODUCTION")
	log = logger.New(level)
	appMetrics = metrics.New()

	backend, err = cfg.OpenStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	counters := appMetrics.CacheCounters()
	appCache, err = cfg.OpenCache(cmd.Context(), &counters)
	if err != nil {
		_ = backend.Close()
		backend = nil
		return fmt.Errorf("failed to open cache: %w", err)
	}

	svc = fitness.NewService(backend, appCache, log)
	log.Debugw("Service ready",
		"store", cfg.GetStoreBackend(),
		"cache", cfg.GetCacheBackend(),
		"data_dir", cfg.GetDataDir(),
	)
	return nil
}

func teardown() error {
	var firstErr error
	if appCache != nil {
		if err := appCache.Close(); err != nil {
			firstErr = fmt.Errorf("close cache: %w", err)
		}
		appCache = nil
	}
	if backend != nil {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
		backend = nil
	}
	if log != nil {
		_ = log.Sync()
	}
	svc = nil
	return firstErr
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/fittrack/config.json)")
}
