package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// StdioBridge is a concrete host bridge that spawns the backend as a
// subprocess and exchanges newline-delimited JSON-RPC over its
// stdin/stdout. One request is in flight at a time.
type StdioBridge struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
}

// StartStdioBridge launches the backend subprocess and wires its pipes.
func StartStdioBridge(name string, args []string) (*StdioBridge, error) {
	cmd := exec.Command(name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}

	// Backend stderr passes through to ours.
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting backend %q: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max message

	return &StdioBridge{
		cmd:     cmd,
		stdin:   stdin,
		scanner: scanner,
	}, nil
}

// Invoke writes the payload as one line and returns the backend's next
// output line as a string, satisfying the bridge invoker contract.
func (b *StdioBridge) Invoke(_ context.Context, payload []byte) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.stdin.Write(payload); err != nil {
		return nil, fmt.Errorf("writing to backend: %w", err)
	}
	if _, err := b.stdin.Write([]byte("\n")); err != nil {
		return nil, fmt.Errorf("writing newline to backend: %w", err)
	}

	for b.scanner.Scan() {
		line := b.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		return string(line), nil
	}
	if err := b.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading from backend: %w", err)
	}
	return nil, fmt.Errorf("backend closed its stdout")
}

// Close terminates the backend subprocess.
func (b *StdioBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = b.stdin.Close()
	if b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
	}
	return b.cmd.Wait()
}
