package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the backend's configured model providers",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	providers, err := client.ProvidersList(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing providers: %w", err)
	}
	for _, p := range providers {
		marker := " "
		if p.IsActive {
			marker = "*"
		}
		status := "disabled"
		if p.Enabled {
			status = "enabled"
		}
		fmt.Printf("%s %-20s %-8s auth=%v %s\n", marker, p.Name, status, p.HasAuth, p.ConfigSummary)
	}
	return nil
}
