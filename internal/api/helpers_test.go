package api

import (
	"testing"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func decodeValidationError(t *testing.T, req interface{}) error {
	t.Helper()

	err := shared.ValidateRequest(req)
	require.Error(t, err)
	return err
}
