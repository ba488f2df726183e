package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/drivetrainhq/eagleview/internal/config"
	"github.com/drivetrainhq/eagleview/internal/db"
	"github.com/drivetrainhq/eagleview/internal/history"
	"github.com/drivetrainhq/eagleview/internal/linear"
	"github.com/drivetrainhq/eagleview/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the local release dashboard",
	Long: `Starts a local HTTP server that serves the dashboard, exposes the
latest snapshot files, and proxies label add/remove operations to Linear.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%s is required: set it in the environment or as api_key in %s", config.APIKeyEnvVar, cfgFile)
	}

	port := cfg.Server.Port
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort > 0 {
		port = flagPort
	}

	client := linear.New(cfg.APIKey, cfg.Endpoint)

	srv := server.New(server.Config{
		Port:           port,
		StaticDir:      cfg.Server.StaticDir,
		DataDir:        cfg.OutputDir,
		ConfigPath:     cfgFile,
		AllowAll:       cfg.Server.AllowAll,
		RefreshTimeout: time.Duration(cfg.Server.RefreshTimeout) * time.Second,
	}, client)

	database, err := db.Open(filepath.Join(cfg.OutputDir, "eagleview.db"))
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()
	history.RegisterRoutes(srv.Router(), history.NewStore(database))

	fmt.Fprintf(os.Stderr, "Dashboard:  http://localhost:%d/\n", port)
	fmt.Fprintf(os.Stderr, "Snapshots:  http://localhost:%d/data/\n", port)
	fmt.Fprintf(os.Stderr, "API:        http://localhost:%d/api/latest-json\n", port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
