package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies. Card sides are short text.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// errTrailingData is returned when a body holds more than one JSON value.
var errTrailingData = errors.New("request body must contain a single JSON value")

// DecodeJSON decodes the request body into v. The body must hold exactly one
// JSON object with no fields that v does not declare.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// ValidateRequest runs the struct's `validate` tags. Failures are
// validator.ValidationErrors.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
