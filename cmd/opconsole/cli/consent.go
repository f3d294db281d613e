package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/api"
)

var consentStatusFilter string

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Inspect the backend approvals queue",
}

var consentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List consent records",
	RunE:  runConsentList,
}

func init() {
	consentListCmd.Flags().StringVar(&consentStatusFilter, "status", "", "filter by status (pending, approved, denied, expired)")
	consentCmd.AddCommand(consentListCmd)
	rootCmd.AddCommand(consentCmd)
}

func runConsentList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := client.ConsentList(cmd.Context(), api.ConsentListParams{Status: consentStatusFilter})
	if err != nil {
		return fmt.Errorf("listing consents: %w", err)
	}
	for _, rec := range records {
		requested := time.Unix(rec.RequestedAtUnixSeconds, 0).Format("15:04:05")
		fmt.Printf("%-36s %-30s %-14s %-9s %s\n", rec.ConsentID, rec.ToolName, rec.CapabilityTier, rec.Status, requested)
		if rec.Rationale != "" {
			fmt.Printf("    %s\n", rec.Rationale)
		}
	}
	return nil
}
