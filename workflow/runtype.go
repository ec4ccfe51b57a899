package workflow

import (
	"fmt"
	"io"
)

// RunType carries the workflow state together with the execution mode.
//
// In a real run steps perform their effects. In a dry run every operation
// that would change something writes exactly one line describing it to the
// sink and does nothing else.
type RunType struct {
	state  State
	sink   io.Writer
	dryRun bool
}

// Real returns a run that applies its effects.
func Real(state State) RunType {
	return RunType{state: state}
}

// DryRun returns a run that only describes its effects, writing to sink.
func DryRun(state State, sink io.Writer) RunType {
	if sink == nil {
		sink = io.Discard
	}
	return RunType{state: state, sink: sink, dryRun: true}
}

// Simulating reports whether this is a dry run.
func (r RunType) Simulating() bool {
	return r.dryRun
}

// State returns the workflow state.
func (r RunType) State() State {
	return r.state
}

// WithState returns r carrying s, in the same mode.
func (r RunType) WithState(s State) RunType {
	r.state = s
	return r
}

// Describe writes one line to the dry-run sink. It does nothing in a real run.
func (r RunType) Describe(format string, args ...any) error {
	if !r.dryRun {
		return nil
	}
	_, err := fmt.Fprintf(r.sink, format+"\n", args...)
	return err
}

func (r RunType) mode() string {
	if r.dryRun {
		return "dry-run"
	}
	return "real"
}
