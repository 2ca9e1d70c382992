package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/store"
)

// SQLSTATE codes for the integrity constraints the schema declares.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// violations names each integrity constraint class.
var violations = map[string]string{
	uniqueViolationCode:     "unique violation",
	foreignKeyViolationCode: "foreign key violation",
	checkViolationCode:      "check constraint violation",
	notNullViolationCode:    "not null violation",
}

// MapError translates a database error into the store's error vocabulary.
//
// A row rejected by a constraint (an empty card side, a score out of
// bounds, a dangling deck_cards reference) matches store.ErrInvalidEntity.
// Errors that already match ErrIO or ErrInvalidEntity pass through. Anything
// else matches store.ErrIO. The driver's message stays in the text.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrIO) || errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := violations[pgErr.Code]; ok {
			subject := pgErr.ConstraintName
			if pgErr.Code == notNullViolationCode {
				subject = pgErr.ColumnName
			}
			return fmt.Errorf("%w: %s (%s): %v", store.ErrInvalidEntity, kind, subject, err)
		}
	}

	return fmt.Errorf("%w: %v", store.ErrIO, err)
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// such as two decks saved at the same position.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsCheckConstraintViolation reports whether err is a CHECK violation. The
// schema uses CHECK constraints to keep card sides non-empty and scores in
// bounds.
func IsCheckConstraintViolation(err error) bool {
	return hasCode(err, checkViolationCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
