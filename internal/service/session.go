package service

import (
	"context"

	"github.com/phrazzld/flashdeck/internal/domain/review"
)

// ReviewSession is a review.Session over one of the library's decks. Every
// call takes the library lock, so a session may run while other requests use
// the library.
type ReviewSession struct {
	lib  *Library
	s    *review.Session
	deck string
}

// StartReview begins a review of the named deck. It returns
// review.ErrEmptyDeck if the deck has no cards.
func (l *Library) StartReview(name string) (*ReviewSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, _, err := l.find(name)
	if err != nil {
		return nil, err
	}
	s, err := review.NewSession(d, l.params)
	if err != nil {
		return nil, err
	}
	return &ReviewSession{lib: l, s: s, deck: d.Name()}, nil
}

// Current returns the card awaiting an answer; ok is false once the session
// is done.
func (r *ReviewSession) Current() (card CardView, ok bool) {
	r.lib.mu.Lock()
	defer r.lib.mu.Unlock()

	c, n := r.s.Current()
	if c == nil {
		return CardView{}, false
	}
	return view(c, n), true
}

// Answer records outcome for the current card and moves to the next one.
func (r *ReviewSession) Answer(ctx context.Context, outcome review.Outcome) (review.Result, error) {
	r.lib.mu.Lock()
	c, n := r.s.Current()
	res, err := r.s.Answer(outcome)
	r.lib.mu.Unlock()

	if err != nil {
		return review.Result{}, err
	}

	r.lib.emitAnswer(ctx, r.deck, n, c.Front(), res)
	return res, nil
}

// Done reports whether every card has been answered.
func (r *ReviewSession) Done() bool {
	r.lib.mu.Lock()
	defer r.lib.mu.Unlock()
	return r.s.Done()
}

// Progress returns how many cards have been answered and the session size.
func (r *ReviewSession) Progress() (answered, total int) {
	r.lib.mu.Lock()
	defer r.lib.mu.Unlock()
	return r.s.Progress()
}

// Summary reports the session so far.
func (r *ReviewSession) Summary() review.Summary {
	r.lib.mu.Lock()
	defer r.lib.mu.Unlock()
	return r.s.Summary()
}
