package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/internal/console"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat <prompt>",
	Short: "Send a prompt and resolve any consent request interactively",
	Example: `  opconsole chat "what time is it"
  opconsole chat -s sess-1 "open the browser"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "session id to continue")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, cleanup, err := newController(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	prompt := strings.Join(args, " ")

	out, err := ctrl.SendChat(ctx, chatSession, prompt)
	if err != nil {
		return err
	}
	printOutcome(out)

	// Consent requests replace each other; keep resolving until the
	// conversation settles.
	reader := bufio.NewReader(os.Stdin)
	for ctrl.PendingConsent() != nil {
		out, err = resolveConsent(ctx, ctrl, reader)
		if err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		printOutcome(out)
	}
	return nil
}

func resolveConsent(ctx context.Context, ctrl *console.Controller, reader *bufio.Reader) (*console.Outcome, error) {
	pending := ctrl.PendingConsent()
	fmt.Println()
	for _, req := range pending.Requests {
		fmt.Printf("  %s (%s)", req.ToolName, req.CapabilityTier)
		if req.Reason != "" {
			fmt.Printf(" — %s", req.Reason)
		}
		fmt.Println()
		if req.ArgumentsPreview != "" {
			fmt.Printf("    %s\n", req.ArgumentsPreview)
		}
	}
	if pending.Meta != nil && pending.Meta.HumanSummary != "" {
		fmt.Printf("  %s\n", pending.Meta.HumanSummary)
	}

	verb := "Approve"
	if pending.Armed {
		verb = "Confirm high-risk action"
	}
	fmt.Printf("%s? [y/N] ", verb)

	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		out, err := ctrl.Approve(ctx)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		out, err := ctrl.Deny(ctx)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

func printOutcome(out *console.Outcome) {
	fmt.Println(out.Status)
	if out.Warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", out.Warning)
	}
	for _, evt := range out.Executed {
		fmt.Printf("  executed %s (%s)\n", evt.ToolName, evt.CapabilityTier)
	}
}
