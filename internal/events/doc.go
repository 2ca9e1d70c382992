// Package events lets the library announce what happens during review
// without knowing who listens.
//
// The primary components are:
// - Event: something that happened to a deck or card, with a JSON payload
// - Handler: anything that reacts to events
// - Emitter: anything that publishes events to handlers
package events
