package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/opconsole/opconsole/api"
)

// File is the on-disk YAML configuration.
type File struct {
	Version       int              `yaml:"version"`
	Backend       BackendSettings  `yaml:"backend"`
	Provider      ProviderSettings `yaml:"provider"`
	Mode          string           `yaml:"mode"`
	HistoryDir    string           `yaml:"history_dir"`
	RiskPolicy    string           `yaml:"risk_policy"`
	DashboardAddr string           `yaml:"dashboard_addr"`
}

// BackendSettings locates the action-execution backend. A non-empty
// bridge_command selects the bridge transport strategy; otherwise the
// client posts to the HTTP endpoint.
type BackendSettings struct {
	Addr          string   `yaml:"addr"`
	Endpoint      string   `yaml:"endpoint"`
	BridgeCommand []string `yaml:"bridge_command"`
}

// ProviderSettings is the default model provider for chat requests.
type ProviderSettings struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
}

// Config is the validated runtime configuration.
type Config struct {
	EndpointURL    string
	BridgeCommand  []string
	Provider       api.ProviderConfig
	Mode           api.Mode
	HistoryDir     string
	RiskPolicyPath string
	DashboardAddr  string
}

// Load reads a YAML config file and produces a runtime Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses YAML data and produces a runtime Config.
func LoadBytes(data []byte) (*Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return fromFile(&f)
}

func fromFile(f *File) (*Config, error) {
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}

	cfg := DefaultConfig()

	if f.Backend.Addr != "" {
		cfg.EndpointURL = endpointURL(f.Backend.Addr, f.Backend.Endpoint)
	} else if f.Backend.Endpoint != "" {
		cfg.EndpointURL = endpointURL(DefaultBackendAddr, f.Backend.Endpoint)
	}
	cfg.BridgeCommand = f.Backend.BridgeCommand

	if f.Provider.Name != "" {
		cfg.Provider.ProviderName = f.Provider.Name
	}
	cfg.Provider.Model = f.Provider.Model

	switch api.Mode(f.Mode) {
	case "":
	case api.ModeBestEffort, api.ModeRequireConfirmation:
		cfg.Mode = api.Mode(f.Mode)
	default:
		return nil, fmt.Errorf("invalid mode %q (want BestEffort or RequireConfirmation)", f.Mode)
	}

	if f.HistoryDir != "" {
		cfg.HistoryDir = f.HistoryDir
	}
	cfg.HistoryDir = expandHome(cfg.HistoryDir)

	if f.RiskPolicy != "" {
		cfg.RiskPolicyPath = expandHome(f.RiskPolicy)
	}
	if f.DashboardAddr != "" {
		cfg.DashboardAddr = f.DashboardAddr
	}

	return cfg, nil
}

func endpointURL(addr, endpoint string) string {
	if endpoint == "" {
		endpoint = DefaultEndpointPath
	}
	return "http://" + addr + endpoint
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfig returns the configuration used when no config file is
// given.
func DefaultConfig() *Config {
	return &Config{
		EndpointURL:   endpointURL(DefaultBackendAddr, DefaultEndpointPath),
		Provider:      api.ProviderConfig{ProviderName: DefaultProvider},
		Mode:          api.ModeRequireConfirmation,
		HistoryDir:    expandHome(DefaultHistoryDir()),
		DashboardAddr: DefaultDashboardAddr,
	}
}
