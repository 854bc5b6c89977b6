// ABOUTME: CLI command for starting the GraphQL API server.
// ABOUTME: Wires nutrition lookup, photo processing and metrics into the HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/fittrack/internal/graphql"
	"github.com/harperreed/fittrack/internal/nutrition"
	"github.com/harperreed/fittrack/internal/photo"
)

const shutdownTimeout = 10 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL API server",
	Long: `Start the HTTP server.

ENDPOINTS:

  POST /graphql           GraphQL queries and mutations
  GET  /healthz           Liveness check
  GET  /metrics           Prometheus metrics
  GET  /api/nutrition     Food macro lookup (requires NUTRITION_API_KEY)
  POST /api/uploadPhoto   Profile photo upload (multipart field profilePhoto)
  GET  /uploads/...       Processed photos

EXAMPLES:

  fittrack serve
  fittrack serve --listen :8080
  FITTRACK_CACHE_BACKEND=redis FITTRACK_REDIS_ADDR=localhost:6379 fittrack serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server, err := newAPIServer()
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.Start(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Stop(shutdownCtx)
		})
		return g.Wait()
	},
}

func newAPIServer() (*graphql.Server, error) {
	serverCfg := graphql.DefaultServerConfig()
	serverCfg.Addr = cfg.GetListen()
	if serveListen != "" {
		serverCfg.Addr = serveListen
	}
	serverCfg.Debug = cfg.Server.Debug
	serverCfg.CORSOrigins = cfg.Server.CORSOrigins

	var photoOpts []photo.Option
	if cfg.Photos.Binary != "" {
		photoOpts = append(photoOpts, photo.WithBinary(cfg.Photos.Binary))
	}
	opts := []graphql.ServerOption{
		graphql.WithMetrics(appMetrics),
		graphql.WithPhotos(photo.NewProcessor(cfg.GetUploadDir(), photoOpts...)),
	}

	if cfg.Nutrition.APIKey != "" {
		var nutritionOpts []nutrition.Option
		if cfg.Nutrition.BaseURL != "" {
			nutritionOpts = append(nutritionOpts, nutrition.WithBaseURL(cfg.Nutrition.BaseURL))
		}
		opts = append(opts, graphql.WithNutrition(nutrition.NewClient(cfg.Nutrition.APIKey, nutritionOpts...)))
	} else {
		log.Warn("NUTRITION_API_KEY is not set; /api/nutrition is disabled")
	}

	return graphql.NewServer(svc, serverCfg, log, opts...)
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default :4000)")
	rootCmd.AddCommand(serveCmd)
}
