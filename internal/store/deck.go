package store

import (
	"context"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// DeckStore loads and saves a whole deck library.
type DeckStore interface {
	// Load returns every saved deck in order.
	//
	// Loading is all-or-nothing: if any deck or card fails validation the
	// whole load fails and no decks are returned. Errors match ErrIO (or
	// ErrMalformed) for storage problems, domain.ErrInvalidCard for an empty
	// card side, and domain.ErrThresholdExceeded for an out-of-range score.
	Load(ctx context.Context) ([]*domain.Deck, error)

	// Save replaces the stored library with decks, preserving deck and card
	// order. Errors match ErrIO.
	Save(ctx context.Context, decks []*domain.Deck) error
}
