// Package domain contains the flashcard model: cards with a bounded score,
// decks that hold shared card references, and the mastery metric derived
// from them. It has no dependencies on storage or delivery.
package domain
