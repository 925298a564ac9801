package command

import (
	"context"
	"fmt"
	"sync"
)

// FakeResponse scripts the outcome of one command name.
type FakeResponse struct {
	Result Result
	Err    error
	// Hook runs before the response is returned, e.g. to create the file a
	// real tool would have produced.
	Hook func(cmd Command) error
}

// FakeRunner is a scripted Runner for tests. Commands without a scripted
// response behave like a missing executable.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     []Command
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]FakeResponse)}
}

// On scripts the response for commands named name.
func (f *FakeRunner) On(name string, resp FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = resp
	return f
}

// OnOutput scripts a successful run printing stdout.
func (f *FakeRunner) OnOutput(name, stdout string) *FakeRunner {
	return f.On(name, FakeResponse{Result: Result{Stdout: []byte(stdout)}})
}

// Calls returns the commands run so far, in order.
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[cmd.Name]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}
	if !ok {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %s", ErrNotFound, cmd.Name)
	}
	if resp.Hook != nil {
		if err := resp.Hook(cmd); err != nil {
			return Result{ExitCode: -1}, err
		}
	}
	if resp.Err != nil {
		return Result{ExitCode: -1}, resp.Err
	}
	return resp.Result, nil
}
