package generator

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline phase a generation failure came from.
type Stage string

const (
	StageValidate Stage = "validate"
	StageEncode   Stage = "encode"
	StageLayout   Stage = "layout"
	StageCompose  Stage = "compose"
	StageRender   Stage = "render"
)

// ErrRenderBackend marks failures of the external rendering backend,
// including timeouts. Rendering is never retried internally; the caller
// owns the retry policy.
var ErrRenderBackend = errors.New("rendering backend failed")

// GenerationError wraps the failing stage and its cause. Every pipeline
// failure surfaces as one of these so callers can tell which phase
// broke without parsing messages.
type GenerationError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// stageErr wraps err with its stage unless it is nil.
func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &GenerationError{Stage: stage, Err: err}
}
