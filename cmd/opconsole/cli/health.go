package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the backend's self-report",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	health, err := client.SystemHealth(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	state := "degraded"
	if health.OK {
		state = "ok"
	}
	fmt.Printf("backend:          %s (via %s)\n", state, client.TransportKind())
	fmt.Printf("active provider:  %s\n", health.ActiveProvider)
	fmt.Printf("providers:        %d\n", health.ProviderCount)
	fmt.Printf("pending consents: %d\n", health.PendingConsents)
	if health.ProjectPath != "" {
		fmt.Printf("project:          %s\n", health.ProjectPath)
	}
	for _, warning := range health.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	return nil
}
