// Package errors classifies failures of the theme core into the three
// categories callers handle differently: configuration errors surface
// synchronously, environment errors degrade and are reported through events,
// lifecycle misuse is a logged no-op.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups errors by how the caller is expected to react.
type Category string

const (
	// CategoryConfig covers invalid templates, options and numeric ranges.
	CategoryConfig Category = "config"
	// CategoryEnvironment covers rejected fullscreen requests and missing
	// platform capabilities.
	CategoryEnvironment Category = "environment"
	// CategoryLifecycle covers calls made after destroy.
	CategoryLifecycle Category = "lifecycle"
)

// Sentinels matched with errors.Is.
var (
	ErrDestroyed        = stderrors.New("instance destroyed")
	ErrDuplicateControl = stderrors.New("duplicate control")
	ErrUnknownControl   = stderrors.New("unknown control")
	ErrUnknownField     = stderrors.New("unknown state field")
	ErrInvalidValue     = stderrors.New("invalid value")
	ErrInvalidRange     = stderrors.New("invalid range")
	ErrUnsupported      = stderrors.New("unsupported")
)

// Error is a categorized error carrying the operation that produced it.
type Error struct {
	Category Category
	Op       string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %s: %v", e.Category, e.Op, e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Op, e.Cause)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Category, e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config returns a configuration error wrapping cause.
func Config(op string, cause error, format string, args ...any) *Error {
	return &Error{Category: CategoryConfig, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Environment returns an environment error wrapping cause.
func Environment(op string, cause error) *Error {
	return &Error{Category: CategoryEnvironment, Op: op, Cause: cause}
}

// Lifecycle returns a lifecycle-misuse error for op.
func Lifecycle(op string) *Error {
	return &Error{Category: CategoryLifecycle, Op: op, Cause: ErrDestroyed}
}

// CategoryOf reports the category of err, or "" when err is not categorized.
func CategoryOf(err error) Category {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Category
	}
	return ""
}

// Is reports whether err belongs to category c.
func Is(err error, c Category) bool {
	return CategoryOf(err) == c
}
