package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// InMemoryEmitter dispatches events synchronously to the handlers
// subscribed to their type, in registration order.
type InMemoryEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

type subscription struct {
	handler Handler
	types   map[string]bool // nil means every type
}

func (s subscription) wants(eventType string) bool {
	return s.types == nil || s.types[eventType]
}

// NewInMemoryEmitter creates an emitter with no handlers.
// If logger is nil, a default logger will be used.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to the given event types, or to every
// type when none are given.
func (e *InMemoryEmitter) RegisterHandler(handler Handler, types ...string) {
	sub := subscription{handler: handler}
	if len(types) > 0 {
		sub.types = make(map[string]bool, len(types))
		for _, t := range types {
			sub.types[t] = true
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, sub)
	e.logger.Debug("registered event handler",
		"handler_count", len(e.subs),
		"event_types", types)
}

// EmitEvent delivers event to every subscribed handler. A failing handler
// does not stop delivery to the rest; all handler errors are joined.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	subs := slices.Clone(e.subs)
	e.mu.RUnlock()

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		e.logger.Debug("no handlers subscribed to event",
			"event_id", event.ID,
			"event_type", event.Type)
	}
	return errors.Join(errs...)
}

// LogHandler writes every event it receives to a logger.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. If logger is nil, a default logger will be used.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger.With("component", "event_log")}
}

// HandleEvent implements Handler. Struggling cards are logged at warn level,
// everything else at info.
func (h *LogHandler) HandleEvent(ctx context.Context, event *Event) error {
	level := slog.LevelInfo
	if event.Type == TypeCardStruggling {
		level = slog.LevelWarn
	}

	h.logger.Log(ctx, level, "event",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", string(event.Payload))
	return nil
}
