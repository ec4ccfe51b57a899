package git

import (
	"bytes"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner executes external commands.
// Implementations return stdout with trailing newlines removed.
type CommandRunner interface {
	Run(workDir, command string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command in workDir and returns its stdout.
// On failure the returned error is a *CommandError carrying stderr.
func (r *ExecRunner) Run(workDir, command string, args ...string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimRight(stdout.String(), "\r\n")
	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(out)
		}
		return out, &CommandError{
			Command: command,
			Args:    args,
			Output:  output,
			Err:     err,
		}
	}
	return out, nil
}

// CommandError describes a command that exited unsuccessfully.
type CommandError struct {
	Command string
	Args    []string
	Output  string // stderr, or stdout when stderr was empty
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Test doubles
// =============================================================================

// MockResponse is a canned result for MockRunner.
type MockResponse struct {
	Stdout string
	Err    error
}

// MockCall records one invocation of a mock runner.
type MockCall struct {
	WorkDir string
	Command string
	Args    []string
}

// MockRunner answers commands from a response table and records every call.
//
// Lookup order: exact "command arg1 arg2", then "command", then the wildcard
// registered with OnAnyCommand, then DefaultResponse.
type MockRunner struct {
	mu              sync.Mutex
	Responses       map[string]MockResponse
	DefaultResponse MockResponse
	Calls           []MockCall
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

// MockExpectation registers a response for a command pattern.
type MockExpectation struct {
	runner *MockRunner
	key    string
}

// OnCommand starts registering a response for an exact command line.
func (m *MockRunner) OnCommand(command string, args ...string) *MockExpectation {
	return &MockExpectation{runner: m, key: commandKey(command, args)}
}

// OnAnyCommand starts registering a response for any command.
func (m *MockRunner) OnAnyCommand() *MockExpectation {
	return &MockExpectation{runner: m, key: "*"}
}

// Return sets the response for the expectation.
func (e *MockExpectation) Return(stdout string, err error) *MockRunner {
	e.runner.mu.Lock()
	defer e.runner.mu.Unlock()
	e.runner.Responses[e.key] = MockResponse{Stdout: stdout, Err: err}
	return e.runner
}

// Run implements CommandRunner.
func (m *MockRunner) Run(workDir, command string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: command, Args: args})

	for _, key := range []string{commandKey(command, args), command, "*"} {
		if resp, ok := m.Responses[key]; ok {
			return resp.Stdout, resp.Err
		}
	}
	return m.DefaultResponse.Stdout, m.DefaultResponse.Err
}

// WasCalled reports whether a call was made whose arguments start with args.
func (m *MockRunner) WasCalled(command string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, call := range m.Calls {
		if call.Command != command || len(call.Args) < len(args) {
			continue
		}
		if argsMatch(call.Args[:len(args)], args) {
			return true
		}
	}
	return false
}

// CallCount returns how many times command was run.
func (m *MockRunner) CallCount(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call.Command == command {
			count++
		}
	}
	return count
}

// SequentialMockRunner returns queued responses in order, ignoring arguments.
// Once the queue is drained it returns empty output.
type SequentialMockRunner struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

// NewSequentialMockRunner creates an empty SequentialMockRunner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddOutput queues a response.
func (s *SequentialMockRunner) AddOutput(stdout string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, MockResponse{Stdout: stdout, Err: err})
}

// AddOutputError queues a failed command: stdout is returned alongside a
// *CommandError carrying stderr and err.
func (s *SequentialMockRunner) AddOutputError(stdout, stderr string, err error) {
	s.AddOutput(stdout, &CommandError{Output: stderr, Err: err})
}

// Run implements CommandRunner.
func (s *SequentialMockRunner) Run(workDir, command string, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, MockCall{WorkDir: workDir, Command: command, Args: args})
	if len(s.responses) == 0 {
		return "", nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp.Stdout, resp.Err
}

func commandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

func argsMatch(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
