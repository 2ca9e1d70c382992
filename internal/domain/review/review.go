// Package review implements answering flashcards: turning a correct or
// incorrect answer into a score change and walking a deck one card at a time.
package review

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Outcome is the user's self-assessed answer to a card.
type Outcome string

// Possible outcome values
const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// Notices shown when a card already at a score bound is answered past it.
const (
	NoticeMastered   = "You have mastered this card!"
	NoticeStruggling = "Try to pay extra attention to this card! You seem to have trouble with it."
)

var (
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrNilCard        = errors.New("card cannot be nil")
	ErrEmptyDeck      = errors.New("deck has no cards to review")
	ErrSessionDone    = errors.New("review session is finished")
)

// ParseOutcome converts user input into an Outcome. Besides the outcome names
// it accepts y/yes and n/no, case-insensitively.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "y", "yes":
		return OutcomeCorrect, nil
	case "incorrect", "n", "no":
		return OutcomeIncorrect, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
}

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect
}

// Result describes what an answer did to a card.
type Result struct {
	Outcome Outcome
	Before  int
	After   int
	// Notice is non-empty when the change was rejected at a bound.
	Notice string
}

// Changed reports whether the card's score moved.
func (r Result) Changed() bool {
	return r.Before != r.After
}

// Mastered reports whether the answer hit the upper bound.
func (r Result) Mastered() bool {
	return r.Notice == NoticeMastered
}

// Struggling reports whether the answer hit the lower bound.
func (r Result) Struggling() bool {
	return r.Notice == NoticeStruggling
}

// Apply records an answer on card using the points in params.
//
// Points that would carry the score past a bound move it exactly to that
// bound instead. Only an answer given while the card already sits at the
// bound leaves the score unchanged, and that result carries NoticeMastered
// or NoticeStruggling. Any other failure is returned.
func Apply(card *domain.Card, outcome Outcome, params *Params) (Result, error) {
	if card == nil {
		return Result{}, ErrNilCard
	}
	if !outcome.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	if params == nil {
		params = NewDefaultParams()
	}

	res := Result{Outcome: outcome, Before: card.Score()}
	after, err := card.ChangeScoreBy(params.Points[outcome])
	res.After = after
	if err == nil {
		return res, nil
	}

	var scoreErr *domain.ScoreError
	if !errors.As(err, &scoreErr) {
		return Result{}, err
	}

	bound, notice := domain.WorstThreshold, NoticeStruggling
	if scoreErr.AtBest() {
		bound, notice = domain.BestThreshold, NoticeMastered
	}
	if res.Before == bound {
		res.Notice = notice
		return res, nil
	}

	after, err = card.ChangeScoreBy(bound - res.Before)
	if err != nil {
		return Result{}, err
	}
	res.After = after
	return res, nil
}
