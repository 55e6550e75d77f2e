package execx

import (
	"context"
	"strings"
	"sync"
)

// Call records a single command invocation made through a Fake runner.
type Call struct {
	Name string
	Args []string
}

// Command renders the invocation as a single command line.
func (c Call) Command() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Fake is a scripted Runner for tests. RunFunc and OutputFunc decide the
// outcome of each invocation; every call is recorded regardless.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	RunFunc    func(call Call) error
	OutputFunc func(call Call) ([]byte, error)
}

func (f *Fake) record(name string, args []string) Call {
	call := Call{Name: name, Args: append([]string{}, args...)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return call
}

func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	call := f.record(name, args)
	if f.RunFunc == nil {
		return nil
	}
	return f.RunFunc(call)
}

func (f *Fake) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	call := f.record(name, args)
	if f.OutputFunc == nil {
		return nil, nil
	}
	return f.OutputFunc(call)
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// CommandLines returns every recorded invocation as a command line string.
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, call := range calls {
		lines = append(lines, call.Command())
	}
	return lines
}
