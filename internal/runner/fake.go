package runner

import (
	"context"
	"strings"
)

// FakeRunner records commands instead of executing them. Output and
// FailOn are keyed by the full command line.
type FakeRunner struct {
	Calls  []string
	Output map[string][]byte
	FailOn map[string]error
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := commandLine(name, args)
	f.Calls = append(f.Calls, line)
	if err, ok := f.FailOn[line]; ok {
		return nil, err
	}
	return f.Output[line], nil
}

// Ran reports whether a command line containing substr was executed.
func (f *FakeRunner) Ran(substr string) bool {
	for _, call := range f.Calls {
		if strings.Contains(call, substr) {
			return true
		}
	}
	return false
}
