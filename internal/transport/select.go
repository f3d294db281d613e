package transport

// Options configures strategy selection. Selection happens exactly once at
// startup; nothing re-probes the environment per call.
type Options struct {
	// BridgeCommand, when non-empty, is the backend subprocess to spawn
	// and bind as the host bridge.
	BridgeCommand []string

	// Endpoint is the local JSON-RPC HTTP endpoint for the network
	// fallback strategy.
	Endpoint string
}

// Select binds the bridge strategy when a host bridge is available and
// falls back to the network strategy otherwise. The returned close function
// releases any resources the chosen strategy holds.
func Select(opts Options) (Transport, func() error, error) {
	if len(opts.BridgeCommand) > 0 {
		bridge, err := StartStdioBridge(opts.BridgeCommand[0], opts.BridgeCommand[1:])
		if err != nil {
			return nil, nil, err
		}
		return NewBridge(bridge), bridge.Close, nil
	}
	return NewNetwork(opts.Endpoint), func() error { return nil }, nil
}
