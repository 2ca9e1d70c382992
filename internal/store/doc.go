// Package store defines the persistence boundary for deck libraries.
// Implementations live under internal/platform (a JSON save file and a
// PostgreSQL database); callers depend only on the DeckStore interface and
// the errors declared here.
package store
