package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibraryError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewLibraryError("save", "failed to save decks", cause)
	assert.Equal(t, "library save failed: failed to save decks: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewLibraryError("load", "nothing to load", nil)
	assert.Equal(t, "library load failed: nothing to load", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
