package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
//
// Save replaces the whole stored library in one transaction, so the tables
// always hold exactly the decks of the last successful Save.
type DeckStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDeckStore creates a DeckStore on an open connection pool.
// If logger is nil, a default logger will be used.
func NewDeckStore(db *sql.DB, logger *slog.Logger) *DeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// Load implements store.DeckStore.Load.
// Every card row is rebuilt through domain.NewCard and ChangeScoreBy, so a
// row that slipped past the schema's checks fails the whole load.
func (s *DeckStore) Load(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var decks []*domain.Deck
	err := store.RunInTransaction(ctx, s.db, store.ReadOnly, func(ctx context.Context, tx *sql.Tx) error {
		cards, err := loadCards(ctx, tx)
		if err != nil {
			return err
		}

		byID, order, err := loadDecks(ctx, tx)
		if err != nil {
			return err
		}

		if err := loadDeckCards(ctx, tx, byID, cards); err != nil {
			return err
		}

		decks = make([]*domain.Deck, 0, len(order))
		for _, id := range order {
			decks = append(decks, byID[id])
		}
		return nil
	})
	if err != nil {
		log.Error("failed to load decks", slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrInvalidCard) || errors.Is(err, domain.ErrThresholdExceeded) {
			return nil, err
		}
		return nil, MapError(err)
	}

	log.Debug("loaded decks", slog.Int("deck_count", len(decks)))
	return decks, nil
}

// Save implements store.DeckStore.Save.
// Each distinct *domain.Card is written once, however many deck positions
// refer to it.
func (s *DeckStore) Save(ctx context.Context, decks []*domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if err := clearTables(ctx, tx); err != nil {
			return err
		}

		cardIDs := make(map[*domain.Card]uuid.UUID)
		for i, d := range decks {
			deckID := uuid.New()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO decks (id, name, position) VALUES ($1, $2, $3)`,
				deckID, d.Name(), i+1,
			); err != nil {
				return MapError(err)
			}

			for j, c := range d.Cards() {
				cardID, seen := cardIDs[c]
				if !seen {
					cardID = uuid.New()
					cardIDs[c] = cardID
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO cards (id, front, back, score) VALUES ($1, $2, $3, $4)`,
						cardID, c.Front(), c.Back(), c.Score(),
					); err != nil {
						return MapError(err)
					}
				}

				if _, err := tx.ExecContext(ctx,
					`INSERT INTO deck_cards (deck_id, position, card_id) VALUES ($1, $2, $3)`,
					deckID, j+1, cardID,
				); err != nil {
					return MapError(err)
				}
			}
		}

		log.Debug("wrote decks",
			slog.Int("deck_count", len(decks)),
			slog.Int("card_count", len(cardIDs)))
		return nil
	})
	if err != nil {
		log.Error("failed to save decks", slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

func clearTables(ctx context.Context, db store.Querier) error {
	for _, table := range []string{"deck_cards", "decks", "cards"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return MapError(err)
		}
	}
	return nil
}

func loadCards(ctx context.Context, db store.Querier) (map[uuid.UUID]*domain.Card, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, front, back, score FROM cards`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := make(map[uuid.UUID]*domain.Card)
	for rows.Next() {
		var (
			id          uuid.UUID
			front, back string
			score       int
		)
		if err := rows.Scan(&id, &front, &back, &score); err != nil {
			return nil, MapError(err)
		}

		card, err := domain.NewCard(front, back)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", id, err)
		}
		if _, err := card.ChangeScoreBy(score); err != nil {
			return nil, fmt.Errorf("card %s: %w", id, err)
		}
		cards[id] = card
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

func loadDecks(ctx context.Context, db store.Querier) (map[uuid.UUID]*domain.Deck, []uuid.UUID, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM decks ORDER BY position`)
	if err != nil {
		return nil, nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[uuid.UUID]*domain.Deck)
	var order []uuid.UUID
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, MapError(err)
		}
		byID[id] = domain.NewDeck(name)
		order = append(order, id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, MapError(err)
	}
	return byID, order, nil
}

func loadDeckCards(
	ctx context.Context,
	db store.Querier,
	decks map[uuid.UUID]*domain.Deck,
	cards map[uuid.UUID]*domain.Card,
) error {
	rows, err := db.QueryContext(ctx,
		`SELECT deck_id, card_id FROM deck_cards ORDER BY deck_id, position`)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var deckID, cardID uuid.UUID
		if err := rows.Scan(&deckID, &cardID); err != nil {
			return MapError(err)
		}

		deck, ok := decks[deckID]
		if !ok {
			return fmt.Errorf("%w: deck_cards references unknown deck %s", store.ErrInvalidEntity, deckID)
		}
		card, ok := cards[cardID]
		if !ok {
			return fmt.Errorf("%w: deck_cards references unknown card %s", store.ErrInvalidEntity, cardID)
		}
		deck.AddCard(card)
	}
	return MapError(rows.Err())
}
