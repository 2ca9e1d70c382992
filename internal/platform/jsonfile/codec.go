package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// indent is the per-level indentation of written documents.
const indent = "    "

var validate = validator.New()

// Wire types. Pointer fields let validation tell a missing field from a
// zero value.
type libraryDoc struct {
	Decks []deckDoc `json:"decks" validate:"required,dive"`
}

type deckDoc struct {
	Name       *string   `json:"name" validate:"required"`
	Flashcards []cardDoc `json:"flashcards" validate:"required,dive"`
}

type cardDoc struct {
	Front *string `json:"front" validate:"required"`
	Back  *string `json:"back" validate:"required"`
	Score *int    `json:"score" validate:"required"`
}

// Encode writes decks to w as one JSON document, preserving deck order and
// card order within each deck.
func Encode(w io.Writer, decks []*domain.Deck) error {
	doc := libraryDoc{Decks: make([]deckDoc, 0, len(decks))}
	for _, d := range decks {
		name := d.Name()
		dd := deckDoc{Name: &name, Flashcards: make([]cardDoc, 0, d.NumCards())}
		for _, c := range d.Cards() {
			front, back, score := c.Front(), c.Back(), c.Score()
			dd.Flashcards = append(dd.Flashcards, cardDoc{Front: &front, Back: &back, Score: &score})
		}
		doc.Decks = append(doc.Decks, dd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: encode decks: %v", store.ErrIO, err)
	}
	return nil
}

// Decode reads one JSON document from r and rebuilds its decks.
//
// Structural problems (bad JSON, wrong types, missing fields) return an
// error matching store.ErrMalformed. Every card is rebuilt with
// domain.NewCard and then given its saved score through ChangeScoreBy, so an
// empty side fails with domain.ErrInvalidCard and an out-of-range score with
// domain.ErrThresholdExceeded. The first failure aborts the whole decode and
// no decks are returned.
func Decode(r io.Reader) ([]*domain.Deck, error) {
	var doc libraryDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", store.ErrMalformed)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrMalformed, err)
	}

	decks := make([]*domain.Deck, 0, len(doc.Decks))
	for i, dd := range doc.Decks {
		deck := domain.NewDeck(*dd.Name)
		for j, cd := range dd.Flashcards {
			card, err := domain.NewCard(*cd.Front, *cd.Back)
			if err != nil {
				return nil, fmt.Errorf("deck %d card %d: %w", i+1, j+1, err)
			}
			if _, err := card.ChangeScoreBy(*cd.Score); err != nil {
				return nil, fmt.Errorf("deck %d card %d: %w", i+1, j+1, err)
			}
			deck.AddCard(card)
		}
		decks = append(decks, deck)
	}

	return decks, nil
}
