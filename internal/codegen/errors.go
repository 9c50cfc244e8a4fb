// Package codegen dispatches a compilation unit to a target-specific
// backend and defines the error taxonomy every backend reports through.
package codegen

import "github.com/foolang-project/flc/internal/codegen/cgerr"

// ErrorKind tags the handful of ways compiling a unit can fail. Every
// failure is fatal to the compilation unit: nothing is retried, and the
// caller discards whatever partial object bytes exist.
type ErrorKind = cgerr.ErrorKind

const (
	VariableNotFound    = cgerr.VariableNotFound
	LabelNotFound       = cgerr.LabelNotFound
	LabelAlreadyDefined = cgerr.LabelAlreadyDefined
	TypeError           = cgerr.TypeError
	AssignmentRequired  = cgerr.AssignmentRequired
	NotImplemented      = cgerr.NotImplemented
)

// Error is the single tagged error type the backend reports through.
type Error = cgerr.Error

var (
	ErrVariableNotFound    = cgerr.ErrVariableNotFound
	ErrLabelNotFound       = cgerr.ErrLabelNotFound
	ErrLabelAlreadyDefined = cgerr.ErrLabelAlreadyDefined
	ErrTypeError           = cgerr.ErrTypeError
	ErrAssignmentRequired  = cgerr.ErrAssignmentRequired
	ErrNotImplemented      = cgerr.ErrNotImplemented
)
