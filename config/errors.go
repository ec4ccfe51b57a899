package config

import (
	"errors"
	"fmt"
)

// Project config errors.
var (
	// ErrNoConfigFile indicates no releaseflow.yaml or releaseflow.toml was found.
	ErrNoConfigFile = errors.New("no releaseflow config file found")

	// ErrUnknownWorkflow indicates the requested workflow is not defined.
	ErrUnknownWorkflow = errors.New("unknown workflow")
)

// UnknownStepError reports a step whose type is not recognized.
type UnknownStepError struct {
	Workflow string
	Index    int // 1-based position in the workflow
	Type     string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("workflow %s step %d: unknown step type %q", e.Workflow, e.Index, e.Type)
}

// InvalidStepError reports a step missing a required field.
type InvalidStepError struct {
	Workflow string
	Index    int
	Type     string
	Field    string
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("workflow %s step %d: %s requires %q", e.Workflow, e.Index, e.Type, e.Field)
}
