package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/IDS-Mandujano/electronica-back/api"
	"github.com/IDS-Mandujano/electronica-back/api/routes"
	"github.com/IDS-Mandujano/electronica-back/config"
	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/repository"
	"github.com/IDS-Mandujano/electronica-back/internal/service"
	"github.com/IDS-Mandujano/electronica-back/internal/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	disableNewRelic bool
	serverPort      int
	autoMigrate     bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the HTTP API. The server respects config.yaml or the file given
with --config, and shuts down gracefully on SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(cmd.Context()); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&disableNewRelic, "disable-newrelic", false, "Disable New Relic monitoring")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "Server port (overrides config file)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run database migrations before serving")
}

// startServer wires the service and blocks until a signal arrives or the
// listener fails
func startServer(parent context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}
	if disableNewRelic {
		cfg.NewRelic.Enabled = false
	}

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"auth_required":    cfg.Auth.Required,
		"newrelic_enabled": cfg.NewRelic.Enabled,
	}).Info("Initializing service components...")

	// Connect to database
	db, err := database.ConnectWithRetry(cfg.Database, log, 5)
	if err != nil {
		return err
	}
	log.Info("Successfully connected to database")
	defer func() {
		log.Info("Closing database connection...")
		if err := db.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing database connection")
		}
	}()

	if autoMigrate {
		log.Info("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	// Initialize event publisher
	publisher, err := messaging.NewPublisher(cfg.ServiceBus, "electronica-back", log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing event publisher")
		}
	}()

	// Initialize New Relic
	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.Warnf("Failed to initialize New Relic: %v", err)
	}

	// Initialize services
	svcCfg := service.Config{
		Store:     repository.NewStore(db),
		Publisher: publisher,
		Logger:    log,
	}
	server := api.NewServer(cfg, log, nrApp, routes.Services{
		Tickets:   service.NewTicketService(svcCfg),
		Inventory: service.NewInventoryService(svcCfg),
		Stats:     service.NewStatsService(svcCfg),
	})

	if parent == nil {
		parent = context.Background()
	}
	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server...")

		timeout := cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}
	log.Info("Server shutdown complete")
	return nil
}
