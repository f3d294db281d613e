package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/internal/dashboard"
)

var dashAddr string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard for sending chat requests, resolving consent
requests, and browsing the execution history.`,
	Example: `  opconsole dashboard
  opconsole dashboard -l :8080 -c config.yaml`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashAddr, "listen", "l", "", "dashboard listen address")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dashAddr != "" {
		cfg.DashboardAddr = dashAddr
	}

	ctrl, cleanup, err := newController(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down dashboard")
		cancel()
	}()

	dash := dashboard.NewServer(cfg.DashboardAddr, ctrl, logger)
	return dash.ListenAndServe(ctx)
}
