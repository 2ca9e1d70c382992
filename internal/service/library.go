package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckSummary is a read-only snapshot of a deck.
type DeckSummary struct {
	Name     string  `json:"name"`
	NumCards int     `json:"num_cards"`
	Mastery  float64 `json:"mastery"`
	Label    string  `json:"label"`
}

// CardView is a read-only snapshot of a card at a position in a deck.
type CardView struct {
	Position int    `json:"position"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Score    int    `json:"score"`
}

// DeckDetail is a consistent snapshot of one deck with its cards.
type DeckDetail struct {
	Deck    DeckSummary `json:"deck"`
	Cards   []CardView  `json:"cards"`
	Listing string      `json:"listing"`
}

// Library is the user's ordered collection of decks.
//
// All methods are safe for concurrent use. Deck names are unique within a
// library when created through CreateDeck; a loaded file may still contain
// duplicates, in which case lookups find the first.
type Library struct {
	mu      sync.Mutex
	decks   []*domain.Deck
	store   store.DeckStore
	emitter events.Emitter
	params  *review.Params
	logger  *slog.Logger
}

// NewLibrary creates an empty Library backed by st.
// It returns an error if st is nil. A nil emitter disables events, nil params
// means review.NewDefaultParams and a nil logger means slog.Default().
func NewLibrary(
	st store.DeckStore,
	emitter events.Emitter,
	params *review.Params,
	logger *slog.Logger,
) (*Library, error) {
	if st == nil {
		return nil, errors.New("deck store cannot be nil")
	}
	if params == nil {
		params = review.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Library{
		decks:   make([]*domain.Deck, 0),
		store:   st,
		emitter: emitter,
		params:  params,
		logger:  logger.With(slog.String("component", "library")),
	}, nil
}

// Decks returns a summary of every deck, in library order.
func (l *Library) Decks() []DeckSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]DeckSummary, 0, len(l.decks))
	for _, d := range l.decks {
		out = append(out, summarize(d))
	}
	return out
}

// Deck returns a summary of the named deck.
func (l *Library) Deck(name string) (DeckSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(name)
	if err != nil {
		return DeckSummary{}, err
	}
	return summarize(d), nil
}

// Cards returns the cards of the named deck in order.
func (l *Library) Cards(name string) ([]CardView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(name)
	if err != nil {
		return nil, err
	}
	return views(d), nil
}

// DeckDetail returns the summary, cards and listing of the named deck,
// all taken under the same lock.
func (l *Library) DeckDetail(name string) (DeckDetail, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(name)
	if err != nil {
		return DeckDetail{}, err
	}
	return DeckDetail{
		Deck:    summarize(d),
		Cards:   views(d),
		Listing: d.ListCards(),
	}, nil
}

// ListCards returns the numbered card listing of the named deck.
func (l *Library) ListCards(name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(name)
	if err != nil {
		return "", err
	}
	return d.ListCards(), nil
}

// Mastery returns the mastery of every card reference in the library taken
// together, as if all decks were one. An empty library is fully mastered.
func (l *Library) Mastery() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := domain.NewDeck("")
	for _, d := range l.decks {
		for _, c := range d.Cards() {
			all.AddCard(c)
		}
	}
	return all.Mastery()
}

// CreateDeck adds an empty deck at the end of the library. The name is
// trimmed; an empty or already used name is rejected.
func (l *Library) CreateDeck(ctx context.Context, name string) (DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	name = strings.TrimSpace(name)
	if name == "" {
		return DeckSummary{}, ErrDeckNameEmpty
	}

	l.mu.Lock()
	if _, _, err := l.find(name); err == nil {
		l.mu.Unlock()
		return DeckSummary{}, fmt.Errorf("%w: %q", ErrDeckExists, name)
	}
	d := domain.NewDeck(name)
	l.decks = append(l.decks, d)
	summary := summarize(d)
	l.mu.Unlock()

	log.Info("deck created", slog.String("deck", name))
	l.emit(ctx, events.TypeDeckCreated, events.DeckPayload{Deck: name})
	return summary, nil
}

// DeleteDeck removes the named deck. Its cards remain in any other deck that
// shares them.
func (l *Library) DeleteDeck(ctx context.Context, name string) error {
	log := logger.FromContextOrDefault(ctx, l.logger)

	l.mu.Lock()
	d, i, err := l.find(name)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.decks = append(l.decks[:i], l.decks[i+1:]...)
	l.mu.Unlock()

	log.Info("deck deleted", slog.String("deck", d.Name()))
	l.emit(ctx, events.TypeDeckDeleted, events.DeckPayload{Deck: d.Name()})
	return nil
}

// AddCard creates a card from the trimmed front and back and appends it to
// the named deck. It returns domain.ErrInvalidCard if either side is empty
// after trimming.
func (l *Library) AddCard(ctx context.Context, deck, front, back string) (CardView, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	card, err := domain.NewCard(strings.TrimSpace(front), strings.TrimSpace(back))
	if err != nil {
		return CardView{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(deck)
	if err != nil {
		return CardView{}, err
	}
	d.AddCard(card)

	log.Debug("card added", slog.String("deck", d.Name()), slog.Int("position", d.NumCards()))
	return view(card, d.NumCards()), nil
}

// RemoveCard removes the card at 1-based position n of the named deck and
// returns it as it was.
func (l *Library) RemoveCard(ctx context.Context, deck string, n int) (CardView, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(deck)
	if err != nil {
		return CardView{}, err
	}
	card, err := d.RemoveNthCard(n)
	if err != nil {
		return CardView{}, err
	}

	log.Debug("card removed", slog.String("deck", d.Name()), slog.Int("position", n))
	return view(card, n), nil
}

// Answer records a review answer for the card at 1-based position n of the
// named deck. Reaching a score bound is reported in the result's Notice, not
// as an error.
func (l *Library) Answer(ctx context.Context, deck string, n int, outcome review.Outcome) (review.Result, error) {
	l.mu.Lock()
	d, _, err := l.find(deck)
	if err != nil {
		l.mu.Unlock()
		return review.Result{}, err
	}
	card, err := d.NthCard(n)
	if err != nil {
		l.mu.Unlock()
		return review.Result{}, err
	}
	res, err := review.Apply(card, outcome, l.params)
	front := card.Front()
	name := d.Name()
	l.mu.Unlock()

	if err != nil {
		return review.Result{}, err
	}

	l.emitAnswer(ctx, name, n, front, res)
	return res, nil
}

// Load replaces the library with the decks in the store. On any error the
// library is left exactly as it was.
func (l *Library) Load(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, l.logger)

	decks, err := l.store.Load(ctx)
	if err != nil {
		return NewLibraryError("load", "failed to load decks", err)
	}

	l.mu.Lock()
	l.decks = decks
	payload := l.payload()
	l.mu.Unlock()

	log.Info("library loaded", slog.Int("deck_count", payload.Decks), slog.Int("card_count", payload.Cards))
	l.emit(ctx, events.TypeLibraryLoaded, payload)
	return nil
}

// Save writes every deck to the store.
func (l *Library) Save(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, l.logger)

	l.mu.Lock()
	err := l.store.Save(ctx, l.decks)
	payload := l.payload()
	l.mu.Unlock()

	if err != nil {
		return NewLibraryError("save", "failed to save decks", err)
	}

	log.Info("library saved", slog.Int("deck_count", payload.Decks), slog.Int("card_count", payload.Cards))
	l.emit(ctx, events.TypeLibrarySaved, payload)
	return nil
}

// find must be called with l.mu held.
func (l *Library) find(name string) (*domain.Deck, int, error) {
	name = strings.TrimSpace(name)
	for i, d := range l.decks {
		if d.Name() == name {
			return d, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
}

// payload must be called with l.mu held.
func (l *Library) payload() events.LibraryPayload {
	p := events.LibraryPayload{Decks: len(l.decks)}
	for _, d := range l.decks {
		p.Cards += d.NumCards()
	}
	return p
}

func (l *Library) emitAnswer(ctx context.Context, deck string, n int, front string, res review.Result) {
	payload := events.CardPayload{
		Deck:     deck,
		Position: n,
		Front:    front,
		Outcome:  string(res.Outcome),
		Before:   res.Before,
		After:    res.After,
	}

	l.emit(ctx, events.TypeCardAnswered, payload)
	switch {
	case res.Mastered():
		l.emit(ctx, events.TypeCardMastered, payload)
	case res.Struggling():
		l.emit(ctx, events.TypeCardStruggling, payload)
	}
}

// emit publishes an event without holding l.mu. Failures are logged; the
// operation that caused the event has already happened.
func (l *Library) emit(ctx context.Context, eventType string, payload any) {
	if l.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, l.logger)

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to create event", slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}
	if err := l.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit event", slog.String("event_type", eventType), slog.String("error", err.Error()))
	}
}

func summarize(d *domain.Deck) DeckSummary {
	return DeckSummary{
		Name:     d.Name(),
		NumCards: d.NumCards(),
		Mastery:  d.Mastery(),
		Label:    d.String(),
	}
}

func views(d *domain.Deck) []CardView {
	cards := d.Cards()
	out := make([]CardView, 0, len(cards))
	for i, c := range cards {
		out = append(out, view(c, i+1))
	}
	return out
}

func view(c *domain.Card, position int) CardView {
	return CardView{
		Position: position,
		Front:    c.Front(),
		Back:     c.Back(),
		Score:    c.Score(),
	}
}
