package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionTitle string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage backend chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	RunE:  runSessionsList,
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a session",
	RunE:  runSessionsNew,
}

func init() {
	sessionsNewCmd.Flags().StringVarP(&sessionTitle, "title", "t", "", "session title")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsNewCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := client.SessionsList(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	for _, s := range sessions {
		updated := time.Unix(s.UpdatedAtUnixSeconds, 0).Format("2006-01-02 15:04")
		fmt.Printf("%-36s %-30s %3d msgs  %s\n", s.ID, s.Title, s.MessageCount, updated)
	}
	return nil
}

func runSessionsNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := client.SessionsCreate(cmd.Context(), sessionTitle)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	fmt.Println(session.ID)
	return nil
}
