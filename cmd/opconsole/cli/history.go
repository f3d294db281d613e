package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/internal/history"
)

var historyGrep string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the local execution history",
	Long: `Browse the execution history persisted by previous runs. The history
is read from the configured history directory; no backend connection is
made.`,
	Example: `  opconsole history
  opconsole history --grep firefox`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyGrep, "grep", "g", "", "case-insensitive substring filter")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.LoadDir(cfg.HistoryDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	items := store.Filter(historyGrep)
	if len(items) == 0 {
		if historyGrep != "" {
			fmt.Printf("no entries match %q\n", historyGrep)
		} else {
			fmt.Println("no history recorded yet")
		}
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  [%s] %s\n", item.Timestamp.Format("2006-01-02 15:04:05"), item.Kind, item.Label)
		if item.Body != "" {
			fmt.Printf("    %s\n", item.Body)
		}
		for _, key := range []string{"prompt", "executed_tools", "proposed_tools", "execution_id", "session_id"} {
			if v := item.Details[key]; v != "" {
				fmt.Printf("    %s: %s\n", key, v)
			}
		}
	}
	return nil
}
