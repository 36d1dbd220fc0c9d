package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorSentinel(t *testing.T) {
	sentinel := New("sentinel")
	wrapped := sentinel.Wrap(New("cause"))

	// wrapping must not mutate the sentinel
	assert.Nil(t, sentinel.Unwrap())
	assert.True(t, Is(wrapped, sentinel))

	rewrapped := wrapped.Wrap(New("other cause"))
	assert.True(t, Is(rewrapped, sentinel))
}
