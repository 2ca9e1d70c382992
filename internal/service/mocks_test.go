package service

import (
	"context"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockDeckStore mocks the store.DeckStore interface
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Load(ctx context.Context) ([]*domain.Deck, error) {
	args := m.Called(ctx)
	decks, _ := args.Get(0).([]*domain.Deck)
	return decks, args.Error(1)
}

func (m *MockDeckStore) Save(ctx context.Context, decks []*domain.Deck) error {
	args := m.Called(ctx, decks)
	return args.Error(0)
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
