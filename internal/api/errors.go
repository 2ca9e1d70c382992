package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

// errorMapping ties an error to the status and the client-safe message it is
// reported with.
type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order with errors.Is. ErrMalformed must come
// before ErrIO because it matches both.
var errorMappings = []errorMapping{
	{service.ErrDeckNotFound, http.StatusNotFound, "Deck not found"},
	{domain.ErrIndexOutOfRange, http.StatusNotFound, "Card not found"},
	{service.ErrDeckExists, http.StatusConflict, "Deck already exists"},
	{review.ErrEmptyDeck, http.StatusConflict, "Deck has no cards"},
	{store.ErrMalformed, http.StatusUnprocessableEntity, "Stored library is invalid"},
	{store.ErrInvalidEntity, http.StatusUnprocessableEntity, "Stored library is invalid"},
	{service.ErrDeckNameEmpty, http.StatusBadRequest, "Deck name cannot be empty"},
	{domain.ErrInvalidCard, http.StatusBadRequest, "Card front and back cannot be empty"},
	{review.ErrInvalidOutcome, http.StatusBadRequest, "Invalid outcome"},
	{store.ErrIO, http.StatusInternalServerError, "Storage is unavailable"},
}

const unexpectedErrorMessage = "An unexpected error occurred"

func lookupError(err error) (errorMapping, bool) {
	if err == nil {
		return errorMapping{}, false
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

// MapErrorToStatusCode returns the HTTP status for err. Unknown errors are
// 500s.
func MapErrorToStatusCode(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a message for err that is safe to show a
// client. It never includes the error's own text.
func GetSafeErrorMessage(err error) string {
	if m, ok := lookupError(err); ok {
		return m.message
	}
	return unexpectedErrorMessage
}

// SanitizeValidationError turns a validator error into a user-friendly
// message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
