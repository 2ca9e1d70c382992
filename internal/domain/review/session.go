package review

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// Session walks a deck from its first card to its last, one answer per card.
// The deck is snapshotted when the session starts; cards added or removed
// later are not visited. Session is not safe for concurrent use.
type Session struct {
	deck          *domain.Deck
	cards         []*domain.Card
	params        *Params
	pos           int
	results       []Result
	masteryBefore float64
}

// NewSession starts a session over deck. It returns ErrEmptyDeck when the
// deck has no cards.
func NewSession(deck *domain.Deck, params *Params) (*Session, error) {
	if deck == nil || deck.NumCards() == 0 {
		return nil, ErrEmptyDeck
	}
	if params == nil {
		params = NewDefaultParams()
	}

	cards := deck.Cards()
	return &Session{
		deck:          deck,
		cards:         cards,
		params:        params,
		results:       make([]Result, 0, len(cards)),
		masteryBefore: deck.Mastery(),
	}, nil
}

// Deck returns the deck under review.
func (s *Session) Deck() *domain.Deck {
	return s.deck
}

// Current returns the card awaiting an answer and its 1-based position, or
// nil and 0 once the session is done.
func (s *Session) Current() (*domain.Card, int) {
	if s.Done() {
		return nil, 0
	}
	return s.cards[s.pos], s.pos + 1
}

// Answer applies outcome to the current card and advances to the next one.
func (s *Session) Answer(outcome Outcome) (Result, error) {
	card, _ := s.Current()
	if card == nil {
		return Result{}, ErrSessionDone
	}

	res, err := Apply(card, outcome, s.params)
	if err != nil {
		return Result{}, err
	}

	s.results = append(s.results, res)
	s.pos++
	return res, nil
}

// Done reports whether every card has been answered.
func (s *Session) Done() bool {
	return s.pos >= len(s.cards)
}

// Progress returns how many cards have been answered and the session size.
func (s *Session) Progress() (answered, total int) {
	return s.pos, len(s.cards)
}

// Results returns the answers recorded so far, in order.
func (s *Session) Results() []Result {
	return append([]Result(nil), s.results...)
}

// Summary describes a session after the fact.
type Summary struct {
	Deck          string
	Answered      int
	Correct       int
	Mastered      int
	Struggling    int
	MasteryBefore float64
	MasteryAfter  float64
}

// Summary reports the session so far, using the deck's current mastery.
func (s *Session) Summary() Summary {
	sum := Summary{
		Deck:          s.deck.Name(),
		Answered:      len(s.results),
		MasteryBefore: s.masteryBefore,
		MasteryAfter:  s.deck.Mastery(),
	}
	for _, r := range s.results {
		if r.Outcome == OutcomeCorrect {
			sum.Correct++
		}
		if r.Mastered() {
			sum.Mastered++
		}
		if r.Struggling() {
			sum.Struggling++
		}
	}
	return sum
}
