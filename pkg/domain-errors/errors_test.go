package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeWalksChain(t *testing.T) {
	inner := New(CodeInvariantViolation, "name is required")
	outer := Wrap(inner, CodeValidation, "name is required")
	wrapped := fmt.Errorf("register: %w", outer)

	assert.True(t, HasCode(wrapped, CodeValidation))
	assert.True(t, HasCode(wrapped, CodeInvariantViolation))
	assert.False(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestCodeOfAndMessageOf(t *testing.T) {
	err := Wrap(errors.New("pq: connection refused"), CodeInternal, "failed to load society")
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "failed to load society", MessageOf(err))
	assert.Equal(t, "failed to load society: pq: connection refused", err.Error())

	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
	assert.Equal(t, "", MessageOf(nil))
}

func TestWrapKeepsCauseReachable(t *testing.T) {
	sentinel := errors.New("not found")
	err := Wrap(sentinel, CodeNotFound, "society not found")
	assert.True(t, Is(err, sentinel))
}
