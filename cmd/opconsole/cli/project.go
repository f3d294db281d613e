package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the backend's active project directory",
}

var projectOpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a project directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectOpen,
}

var projectStatusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Report the state of a project directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectStatus,
}

func init() {
	projectCmd.AddCommand(projectOpenCmd)
	projectCmd.AddCommand(projectStatusCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := client.ProjectOpen(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("opening project: %w", err)
	}
	if !result.Exists {
		fmt.Printf("%s does not exist on the backend\n", result.Path)
		return nil
	}
	if !result.IsDir {
		fmt.Printf("%s is not a directory\n", result.Path)
		return nil
	}
	fmt.Printf("opened %s\n", result.Path)
	return nil
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	result, err := client.ProjectStatus(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("querying project status: %w", err)
	}
	fmt.Printf("path:    %s\n", result.Path)
	fmt.Printf("exists:  %v\n", result.Exists)
	fmt.Printf("is_dir:  %v\n", result.IsDir)
	fmt.Printf("entries: %d\n", result.EntryCount)
	return nil
}
