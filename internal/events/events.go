package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the library.
const (
	TypeCardAnswered   = "card.answered"
	TypeCardMastered   = "card.mastered"
	TypeCardStruggling = "card.struggling"
	TypeDeckCreated    = "deck.created"
	TypeDeckDeleted    = "deck.deleted"
	TypeLibrarySaved   = "library.saved"
	TypeLibraryLoaded  = "library.loaded"
)

// Event records something that happened in the library.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// CardPayload is the payload of the card.* events.
type CardPayload struct {
	Deck     string `json:"deck"`
	Position int    `json:"position"`
	Front    string `json:"front"`
	Outcome  string `json:"outcome"`
	Before   int    `json:"score_before"`
	After    int    `json:"score_after"`
}

// DeckPayload is the payload of the deck.* events.
type DeckPayload struct {
	Deck string `json:"deck"`
}

// LibraryPayload is the payload of the library.* events.
type LibraryPayload struct {
	Decks int `json:"decks"`
	Cards int `json:"cards"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// Handler defines an interface for components that can handle events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit events.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
