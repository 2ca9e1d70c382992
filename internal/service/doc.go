// Package service contains the application's use cases. Library owns the
// user's decks, guards them with a mutex so delivery mechanisms (the HTTP API,
// the CLI) can share one instance, persists them through a store.DeckStore,
// and announces review activity through an events.Emitter.
//
// Errors returned by this package wrap the domain, review and store sentinels,
// so callers check them with errors.Is. The API layer maps them to HTTP
// status codes.
package service
