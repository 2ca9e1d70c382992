// Package jsonfile persists deck libraries as a single pretty-printed JSON
// document:
//
//	{"decks": [{"name": "...", "flashcards": [{"front": "...", "back": "...", "score": 0}]}]}
//
// Decoding re-validates every card through the domain constructors and is
// all-or-nothing. Writes replace the destination atomically.
package jsonfile
