package program

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrForbidden         = errors.New("application belongs to another user")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrValidation        = errors.New("application form is incomplete")
)

// TransitionError carries the attempted status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// ValidationError lists the form fields that failed completeness rules.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GatewayOp names the kind of persistence call that failed.
type GatewayOp string

const (
	OpLoad     GatewayOp = "load"
	OpMutation GatewayOp = "mutation"
)

// GatewayError wraps a failed persistence call (LoadError / MutationError).
type GatewayError struct {
	Op  GatewayOp
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayError reports whether err is a persistence failure.
func IsGatewayError(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr)
}
