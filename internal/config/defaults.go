package config

const (
	DefaultBackendAddr   = "127.0.0.1:7777"
	DefaultEndpointPath  = "/jsonrpc"
	DefaultProvider      = "openai-stub"
	DefaultDashboardAddr = "127.0.0.1:8484"
)

// DefaultHistoryDir returns the default history log directory path.
func DefaultHistoryDir() string {
	return "~/.opconsole/history"
}
