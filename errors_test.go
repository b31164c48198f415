package outline

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Kinds(t *testing.T) {
	kinds := []Kind{ErrInputNotFound, ErrDecode, ErrInvalidInput, ErrOutputWrite}
	seen := map[Kind]bool{}
	for _, k := range kinds {
		require.False(t, seen[k], "duplicate kind %v", k)
		seen[k] = true
	}
}

func TestErrors_Formatting(t *testing.T) {
	e := newError(ErrInvalidInput, "bad size %d", 3)
	assert.Equal(t, "bad size 3", e.Error())
	assert.Equal(t, ErrInvalidInput, e.Kind())

	w := wrapError(ErrDecode, io.ErrUnexpectedEOF, "decoding")
	assert.Contains(t, w.Error(), "decoding")
	assert.Contains(t, w.Error(), io.ErrUnexpectedEOF.Error())

	assert.Equal(t, "decode failure", (&Error{kind: ErrDecode}).Error())
}

func TestErrors_IsMatchesKindAndCause(t *testing.T) {
	err := wrapError(ErrOutputWrite, io.ErrShortWrite, "writing")

	assert.ErrorIs(t, err, ErrOutputWrite)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.NotErrorIs(t, err, ErrDecode)

	var target *Error
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, ErrOutputWrite, target.Kind())
}
