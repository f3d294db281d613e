package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/opconsole/opconsole/internal/config"
	"github.com/opconsole/opconsole/internal/console"
	"github.com/opconsole/opconsole/internal/history"
	"github.com/opconsole/opconsole/internal/risk"
	"github.com/opconsole/opconsole/internal/rpc"
	"github.com/opconsole/opconsole/internal/transport"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "opconsole",
	Short: "OpConsole — operator console for an action-execution backend",
	Long: `OpConsole is a client-side mediator between an operator and a local
JSON-RPC action-execution backend. It sends chat requests, normalizes
heterogeneous action encodings, coordinates consent for risky actions,
and keeps a filterable execution history.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newClient binds a transport and returns a bare RPC client for the
// listing commands, which need no consent or history state.
func newClient(cfg *config.Config) (*rpc.Client, func() error, error) {
	tr, closeTransport, err := transport.Select(transport.Options{
		BridgeCommand: cfg.BridgeCommand,
		Endpoint:      cfg.EndpointURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("selecting transport: %w", err)
	}
	return rpc.NewClient(tr, logger), closeTransport, nil
}

// newController wires the transport, client, classifier, and history store
// into one controller. The returned close function releases the transport
// and flushes the history sink.
func newController(cfg *config.Config) (*console.Controller, func() error, error) {
	tr, closeTransport, err := transport.Select(transport.Options{
		BridgeCommand: cfg.BridgeCommand,
		Endpoint:      cfg.EndpointURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("selecting transport: %w", err)
	}

	sink, err := history.NewJSONLSink(cfg.HistoryDir)
	if err != nil {
		closeTransport()
		return nil, nil, fmt.Errorf("opening history sink: %w", err)
	}
	store := history.NewStore(sink)

	var classifier risk.Classifier = risk.PrefixClassifier{}
	if cfg.RiskPolicyPath != "" {
		classifier, err = risk.NewRegoClassifier(cfg.RiskPolicyPath, risk.PrefixClassifier{})
		if err != nil {
			sink.Close()
			closeTransport()
			return nil, nil, fmt.Errorf("loading risk policy: %w", err)
		}
	}

	ctrl := console.New(console.Options{
		Client:     rpc.NewClient(tr, logger),
		Config:     cfg,
		History:    store,
		Classifier: classifier,
		Logger:     logger,
	})

	cleanup := func() error {
		if err := sink.Close(); err != nil {
			closeTransport()
			return err
		}
		return closeTransport()
	}
	logger.Debug("controller ready", "transport", ctrl.TransportKind())
	return ctrl, cleanup, nil
}
