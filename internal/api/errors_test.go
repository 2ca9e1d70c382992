package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deck not found", fmt.Errorf("%w: %q", service.ErrDeckNotFound, "x"), http.StatusNotFound},
		{"index out of range", &domain.IndexError{N: 4, Size: 3}, http.StatusNotFound},
		{"deck exists", service.ErrDeckExists, http.StatusConflict},
		{"empty deck", review.ErrEmptyDeck, http.StatusConflict},
		{"malformed", store.ErrMalformed, http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"empty name", service.ErrDeckNameEmpty, http.StatusBadRequest},
		{"invalid card", domain.ErrInvalidCard, http.StatusBadRequest},
		{"invalid outcome", review.ErrInvalidOutcome, http.StatusBadRequest},
		{"io", store.ErrIO, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Deck not found", GetSafeErrorMessage(service.ErrDeckNotFound))
	assert.Equal(t, "Storage is unavailable", GetSafeErrorMessage(
		service.NewLibraryError("save", "failed to save decks", store.ErrIO)))
	assert.Equal(t, "Stored library is invalid", GetSafeErrorMessage(store.ErrMalformed))

	leaky := errors.New("open /home/alice/reviewer.json: permission denied")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := decodeValidationError(t, AnswerRequest{Outcome: "maybe"})
	assert.Equal(t, "Invalid outcome: invalid value", SanitizeValidationError(err))

	err = decodeValidationError(t, CreateDeckRequest{})
	assert.Equal(t, "Invalid name: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
