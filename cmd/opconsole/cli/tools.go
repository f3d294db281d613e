package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/internal/risk"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the backend's tool catalog with capability tiers",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tools, err := client.ToolsList(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing tools: %w", err)
	}

	var classifier risk.Classifier = risk.PrefixClassifier{}
	if cfg.RiskPolicyPath != "" {
		classifier, err = risk.NewRegoClassifier(cfg.RiskPolicyPath, risk.PrefixClassifier{})
		if err != nil {
			return fmt.Errorf("loading risk policy: %w", err)
		}
	}

	for _, tool := range tools {
		fmt.Printf("%-40s %-14s %s\n", tool.Name, classifier.Tier(tool.Name), tool.Description)
	}
	return nil
}
