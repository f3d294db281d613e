package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/api"
)

var (
	auditSession string
	auditLimit   int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the backend audit log",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries",
	RunE:  runAudit,
}

func init() {
	auditListCmd.Flags().StringVar(&auditSession, "session", "", "filter by session id")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum entries to fetch")
	auditCmd.AddCommand(auditListCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := client.AuditList(cmd.Context(), api.AuditListParams{
		SessionID: auditSession,
		Limit:     auditLimit,
	})
	if err != nil {
		return fmt.Errorf("listing audit entries: %w", err)
	}
	for _, entry := range entries {
		ts := time.Unix(entry.TimestampUnixSeconds, 0).Format("2006-01-02 15:04:05")
		fmt.Printf("%s  %-36s %s\n", ts, entry.AuditID, entry.Provider)
		if len(entry.ExecutedActions) > 0 {
			fmt.Printf("    executed: %s\n", strings.Join(entry.ExecutedActions, ", "))
		}
		if len(entry.PolicyDecisions) > 0 {
			fmt.Printf("    decisions: %s\n", strings.Join(entry.PolicyDecisions, ", "))
		}
	}
	return nil
}
