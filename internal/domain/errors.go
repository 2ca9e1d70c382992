package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrInvalidCard is returned when a card is constructed with an empty
	// front or back.
	ErrInvalidCard = errors.New("invalid card: front and back must not be empty")

	// ErrThresholdExceeded is returned when a score change would move a card's
	// score outside [WorstThreshold, BestThreshold]. The card is left unchanged.
	ErrThresholdExceeded = errors.New("score threshold exceeded")

	// ErrIndexOutOfRange is returned by positional deck operations when the
	// requested position is outside [1, size].
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// ScoreError describes a rejected score change.
// It matches ErrThresholdExceeded with errors.Is.
type ScoreError struct {
	Score int // score before the rejected change
	Delta int // the requested change
}

// Error implements the error interface for ScoreError.
func (e *ScoreError) Error() string {
	return fmt.Sprintf(
		"%s: %d%+d is outside [%d, %d]",
		ErrThresholdExceeded,
		e.Score,
		e.Delta,
		WorstThreshold,
		BestThreshold,
	)
}

// Unwrap returns ErrThresholdExceeded to support errors.Is.
func (e *ScoreError) Unwrap() error {
	return ErrThresholdExceeded
}

// AtBest reports whether the change was rejected at the upper bound.
func (e *ScoreError) AtBest() bool {
	return e.Delta > 0
}

// AtWorst reports whether the change was rejected at the lower bound.
func (e *ScoreError) AtWorst() bool {
	return e.Delta < 0
}

// IndexError describes a positional access outside a deck's bounds.
// It matches ErrIndexOutOfRange with errors.Is.
type IndexError struct {
	N    int
	Size int
}

// Error implements the error interface for IndexError.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: position %d not in [1, %d]", ErrIndexOutOfRange, e.N, e.Size)
}

// Unwrap returns ErrIndexOutOfRange to support errors.Is.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
