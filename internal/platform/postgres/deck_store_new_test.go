package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckStore(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "db cannot be nil", func() {
		NewDeckStore(nil, nil)
	})

	// sql.Open does not dial, so no server is needed here.
	db, err := sql.Open("pgx", "postgres://flashdeck@localhost:5432/flashdeck")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := NewDeckStore(db, nil)
	require.NotNil(t, st)
	assert.NotNil(t, st.logger)
}
