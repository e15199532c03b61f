package program

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"pitch":        "is required",
		"startup_name": "is required",
	}}
	assert.Equal(t, "application form is incomplete (pitch: is required; startup_name: is required)", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, ErrValidation.Error(), (&ValidationError{}).Error())
}

func TestGatewayErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list: %w", &GatewayError{Op: OpLoad, Err: cause})

	assert.True(t, IsGatewayError(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "load failed: connection refused")
	assert.False(t, IsGatewayError(ErrNotFound))
}

func TestSentinelsAreDistinct(t *testing.T) {
	te := &TransitionError{From: StatusDraft, To: StatusAccepted}
	assert.True(t, errors.Is(te, ErrIllegalTransition))
	assert.False(t, errors.Is(te, ErrForbidden))
	assert.False(t, errors.Is(te, ErrValidation))
	assert.Equal(t, "illegal status transition: draft -> accepted", te.Error())
}
