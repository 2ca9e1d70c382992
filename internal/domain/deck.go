package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// EmptyDeckMessage is what ListCards returns for a deck with no cards.
const EmptyDeckMessage = "You have no cards in this deck!"

// Deck is a named, ordered collection of shared Card references.
//
// Positions are 1-based in every exported method. The same *Card may appear
// any number of times. Deck is not safe for concurrent use.
type Deck struct {
	name  string
	cards []*Card
}

// NewDeck creates an empty deck. The name is free-form; uniqueness is a
// policy of whoever owns the collection of decks.
func NewDeck(name string) *Deck {
	return &Deck{
		name:  name,
		cards: make([]*Card, 0),
	}
}

// Name returns the deck's name.
func (d *Deck) Name() string {
	return d.name
}

// NumCards returns the number of card references in the deck.
func (d *Deck) NumCards() int {
	return len(d.cards)
}

// Cards returns the deck's cards in order. The slice is a copy; the cards are
// not.
func (d *Deck) Cards() []*Card {
	return slices.Clone(d.cards)
}

// AddCard appends c to the end of the deck and returns it.
func (d *Deck) AddCard(c *Card) *Card {
	d.cards = append(d.cards, c)
	return c
}

// NthCard returns the card at 1-based position n.
func (d *Deck) NthCard(n int) (*Card, error) {
	if err := d.checkPosition(n); err != nil {
		return nil, err
	}
	return d.cards[n-1], nil
}

// RemoveNthCard removes and returns the card at 1-based position n. Later
// cards shift down one position.
func (d *Deck) RemoveNthCard(n int) (*Card, error) {
	if err := d.checkPosition(n); err != nil {
		return nil, err
	}

	c := d.cards[n-1]
	d.cards = slices.Delete(d.cards, n-1, n)
	return c, nil
}

func (d *Deck) checkPosition(n int) error {
	if n < 1 || n > len(d.cards) {
		return &IndexError{N: n, Size: len(d.cards)}
	}
	return nil
}

// ListCards renders one "<n>: <front>" line per card, or EmptyDeckMessage.
func (d *Deck) ListCards() string {
	if len(d.cards) == 0 {
		return EmptyDeckMessage
	}

	var b strings.Builder
	for i, c := range d.cards {
		fmt.Fprintf(&b, "%d: %s\n", i+1, c.Front())
	}
	return b.String()
}

// Mastery returns how much of the deck is remembered, as a whole percentage
// in [0, 100].
//
// Each card contributes max(score, 0) out of BestThreshold; negative scores
// never subtract. An empty deck is fully mastered. The ratio is rounded half
// up using integer arithmetic so ties at .5 are exact.
func (d *Deck) Mastery() float64 {
	if len(d.cards) == 0 {
		return 100
	}

	total := 0
	for _, c := range d.cards {
		total += max(c.Score(), 0)
	}

	maxTotal := BestThreshold * len(d.cards)
	// round(100*total/maxTotal) == floor((200*total + maxTotal) / (2*maxTotal))
	return float64((200*total + maxTotal) / (2 * maxTotal))
}

// String returns the deck's display label, e.g. "Trivia | MASTERY: 47.0%".
func (d *Deck) String() string {
	return d.name + " | MASTERY: " + FormatMastery(d.Mastery()) + "%"
}

// FormatMastery renders a mastery value with one decimal place.
func FormatMastery(m float64) string {
	return strconv.FormatFloat(m, 'f', 1, 64)
}
