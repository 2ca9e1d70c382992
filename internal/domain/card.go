package domain

// Score bounds shared by every Card. A card's score always lies in
// [WorstThreshold, BestThreshold].
const (
	BestThreshold  = 5
	WorstThreshold = -3
)

// Card represents a flashcard and how well the user remembers it.
//
// Cards are shared by pointer: a *Card added to several decks (or to the same
// deck twice) is one card, and a score change through any reference is seen
// through all of them. Card is not safe for concurrent use.
type Card struct {
	front string
	back  string
	score int
}

// NewCard creates a Card with a score of 0.
// Returns ErrInvalidCard if front or back is empty. Trimming is the caller's job.
func NewCard(front, back string) (*Card, error) {
	if front == "" || back == "" {
		return nil, ErrInvalidCard
	}

	return &Card{
		front: front,
		back:  back,
	}, nil
}

// Front returns the prompt side of the card.
func (c *Card) Front() string {
	return c.front
}

// Back returns the answer side of the card.
func (c *Card) Back() string {
	return c.back
}

// Score returns the card's current score.
func (c *Card) Score() int {
	return c.score
}

// ChangeScoreBy adds delta to the card's score and returns the new score.
//
// If the result would fall outside [WorstThreshold, BestThreshold] the score
// is left untouched and a *ScoreError wrapping ErrThresholdExceeded is
// returned. Callers that treat the bound as informational must check for
// that error explicitly.
func (c *Card) ChangeScoreBy(delta int) (int, error) {
	next := c.score + delta
	if next < WorstThreshold || next > BestThreshold {
		return c.score, &ScoreError{Score: c.score, Delta: delta}
	}

	c.score = next
	return c.score, nil
}

// String returns the card's front verbatim, for use as a list label.
func (c *Card) String() string {
	return c.front
}
