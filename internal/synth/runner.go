package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single engine invocation when the caller's
// context carries no deadline.
const DefaultTimeout = 30 * time.Second

// Command describes one engine invocation.
type Command struct {
	// Name is the binary to execute.
	Name string

	// Args are the command arguments.
	Args []string

	// Stdin is written to the process before it starts, if non-empty.
	Stdin string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes engine subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs engine subprocesses one at a time.
type ExecRunner struct {
	mu      sync.Mutex
	timeout time.Duration
}

// NewExecRunner creates a runner with the given default timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{timeout: timeout}
}

// Run executes the command and waits for it to exit. Stdin is attached
// before the process starts.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug("running speech engine", "cmd", c.Name, "args", len(c.Args))
	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %v", c.Name, time.Since(start).Round(time.Millisecond))
		}
		return fmt.Errorf("%s cancelled: %w", c.Name, ctxErr)
	}
	if err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return fmt.Errorf("%s failed: %w\nstderr: %s", c.Name, err, s)
		}
		return fmt.Errorf("%s failed: %w", c.Name, err)
	}
	return nil
}

// LookupBinary returns the path of the first candidate found in PATH.
func LookupBinary(candidates ...string) (string, error) {
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrEngineNotFound, strings.Join(candidates, ", "))
}
