// Package cgerr defines the error taxonomy every codegen backend reports
// through. It is split out from the codegen package so that the linux
// backend (which the codegen package dispatches to) can report these
// errors without importing codegen and creating an import cycle.
package cgerr

import "fmt"

// ErrorKind tags the handful of ways compiling a unit can fail. Every
// failure is fatal to the compilation unit: nothing is retried, and the
// caller discards whatever partial object bytes exist.
type ErrorKind int

const (
	VariableNotFound ErrorKind = iota
	LabelNotFound
	LabelAlreadyDefined
	TypeError
	AssignmentRequired
	NotImplemented
)

var errorKindNames = [...]string{
	VariableNotFound:    "variable not found",
	LabelNotFound:       "label not found",
	LabelAlreadyDefined: "label already defined",
	TypeError:           "type error",
	AssignmentRequired:  "assignment required",
	NotImplemented:      "not implemented",
}

func (k ErrorKind) String() string { return errorKindNames[k] }

// Error is the single tagged error type the backend reports through.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func ErrVariableNotFound(name string) *Error {
	return errorf(VariableNotFound, "%q", name)
}

func ErrLabelNotFound(name string) *Error {
	return errorf(LabelNotFound, "%q", name)
}

func ErrLabelAlreadyDefined(name string) *Error {
	return errorf(LabelAlreadyDefined, "%q", name)
}

func ErrTypeError(format string, args ...any) *Error {
	return errorf(TypeError, format, args...)
}

func ErrAssignmentRequired(what string) *Error {
	return errorf(AssignmentRequired, "%s must be used in assignment position", what)
}

func ErrNotImplemented(format string, args ...any) *Error {
	return errorf(NotImplemented, format, args...)
}
