package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckFixture struct {
	c1, c2, c3, c4, c5 *Card
	d1, d2             *Deck
}

func newDeckFixture(t *testing.T) *deckFixture {
	t.Helper()

	f := &deckFixture{
		c1: mustCard(t, "What is the powerhouse of the cell?", "Mitochondria"),
		c2: mustCard(t, "What is 1+1?", "2"),
		c3: mustCard(t, "Where is UBC located?", "Vancouver, BC"),
		c4: mustCard(t, "What is the name of this application?", "Flashcards"),
		c5: mustCard(t, "Consider f(x) = x^2 + 2x + 1. What are the roots?", "x=-1"),
		d1: NewDeck("Random Questions #1"),
		d2: NewDeck("Cool Trivia"),
	}

	f.d1.AddCard(f.c1)
	f.d1.AddCard(f.c2)
	f.d1.AddCard(f.c3)

	f.d2.AddCard(f.c4)
	f.d2.AddCard(f.c5)
	f.d2.AddCard(f.c1)
	f.d2.AddCard(f.c3)
	f.d2.AddCard(f.c4)

	return f
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	f := newDeckFixture(t)
	assert.Equal(t, "Random Questions #1", f.d1.Name())
	assert.Equal(t, "Cool Trivia", f.d2.Name())

	empty := NewDeck("")
	assert.Equal(t, "", empty.Name())
	assert.Equal(t, 0, empty.NumCards())
	assert.Empty(t, empty.Cards())
}

func TestAddCard(t *testing.T) {
	t.Parallel()

	f := newDeckFixture(t)
	assert.Equal(t, 3, f.d1.NumCards())
	assert.Equal(t, 5, f.d2.NumCards())

	for i, c := range []*Card{f.c4, f.c5, f.c1} {
		assert.Same(t, c, f.d1.AddCard(c))
		assert.Equal(t, 4+i, f.d1.NumCards())

		got, err := f.d1.NthCard(4 + i)
		require.NoError(t, err)
		assert.Same(t, c, got)
	}
}

func TestNthCard(t *testing.T) {
	t.Parallel()

	f := newDeckFixture(t)
	want := []*Card{f.c4, f.c5, f.c1, f.c3, f.c4}
	for i, c := range want {
		got, err := f.d2.NthCard(i + 1)
		require.NoError(t, err)
		assert.Same(t, c, got)
	}

	for _, n := range []int{0, -1, 6, 100} {
		got, err := f.d2.NthCard(n)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "n=%d", n)
		assert.Nil(t, got)
	}
}

func TestRemoveNthCard(t *testing.T) {
	t.Parallel()

	t.Run("middle shifts later cards", func(t *testing.T) {
		d := NewDeck("abc")
		a := d.AddCard(mustCard(t, "A", "a"))
		b := d.AddCard(mustCard(t, "B", "b"))
		c := d.AddCard(mustCard(t, "C", "c"))

		removed, err := d.RemoveNthCard(2)
		require.NoError(t, err)
		assert.Same(t, b, removed)
		assert.Equal(t, []*Card{a, c}, d.Cards())

		first, err := d.NthCard(1)
		require.NoError(t, err)
		assert.Same(t, a, first)
	})

	t.Run("first and last", func(t *testing.T) {
		f := newDeckFixture(t)

		removed, err := f.d1.RemoveNthCard(1)
		require.NoError(t, err)
		assert.Same(t, f.c1, removed)
		assert.Equal(t, 2, f.d1.NumCards())

		removed, err = f.d1.RemoveNthCard(2)
		require.NoError(t, err)
		assert.Same(t, f.c3, removed)
		assert.Equal(t, 1, f.d1.NumCards())
	})

	t.Run("only card", func(t *testing.T) {
		f := newDeckFixture(t)
		d := NewDeck("Test")
		d.AddCard(f.c1)

		removed, err := d.RemoveNthCard(1)
		require.NoError(t, err)
		assert.Same(t, f.c1, removed)
		assert.Equal(t, 0, d.NumCards())
	})

	t.Run("huge deck", func(t *testing.T) {
		d := NewDeck("Huge Deck")
		for i := 0; i < 20; i++ {
			d.AddCard(mustCard(t, fmt.Sprintf("Test test test %d", i), "Test!"))
		}

		for i, n := range []int{19, 16, 7} {
			want, err := d.NthCard(n)
			require.NoError(t, err)

			got, err := d.RemoveNthCard(n)
			require.NoError(t, err)
			assert.Same(t, want, got)
			assert.Equal(t, 19-i, d.NumCards())
		}
	})

	t.Run("out of range leaves deck unchanged", func(t *testing.T) {
		f := newDeckFixture(t)
		for _, n := range []int{0, 4, -3} {
			removed, err := f.d1.RemoveNthCard(n)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.Nil(t, removed)
			assert.Equal(t, 3, f.d1.NumCards())
		}
	})
}

func TestCardsReturnsCopy(t *testing.T) {
	t.Parallel()

	f := newDeckFixture(t)
	cards := f.d1.Cards()
	require.Len(t, cards, 3)
	assert.Same(t, f.c1, cards[0])

	cards[0] = f.c5
	first, err := f.d1.NthCard(1)
	require.NoError(t, err)
	assert.Same(t, f.c1, first, "mutating the returned slice must not reorder the deck")
}

func TestSharedCardIdentity(t *testing.T) {
	t.Parallel()

	card := mustCard(t, "shared", "card")
	d := NewDeck("twice")
	d.AddCard(card)
	d.AddCard(card)

	other := NewDeck("elsewhere")
	other.AddCard(card)

	_, err := card.ChangeScoreBy(3)
	require.NoError(t, err)

	for n := 1; n <= 2; n++ {
		got, err := d.NthCard(n)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Score())
	}
	got, err := other.NthCard(1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Score())
}

func TestListCards(t *testing.T) {
	t.Parallel()

	f := newDeckFixture(t)
	want := "1: " + f.c1.Front() + "\n" +
		"2: " + f.c2.Front() + "\n" +
		"3: " + f.c3.Front() + "\n"
	assert.Equal(t, want, f.d1.ListCards())

	assert.Equal(t, EmptyDeckMessage, NewDeck("Aaa").ListCards())
	assert.Equal(t, "You have no cards in this deck!", EmptyDeckMessage)
}

func TestMastery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{name: "empty deck", scores: nil, want: 100},
		{name: "fresh cards", scores: []int{0, 0, 0}, want: 0},
		{name: "all best", scores: []int{5, 5, 5}, want: 100},
		{name: "all worst", scores: []int{-3, -3, -3}, want: 0},
		{name: "negatives clamp to zero", scores: []int{-3, 2, 5}, want: 47},
		{name: "some negative some positive", scores: []int{-2, 0, 5}, want: 33},
		{name: "more negative than positive", scores: []int{-3, -2, 3}, want: 20},
		{name: "one point across ten cards", scores: []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, want: 2},
		{name: "exact tie rounds up", scores: append([]int{1}, make([]int, 39)...), want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDeck(tc.name)
			for _, s := range tc.scores {
				c := d.AddCard(mustCard(t, "front", "back"))
				_, err := c.ChangeScoreBy(s)
				require.NoError(t, err)
			}

			m := d.Mastery()
			assert.Equal(t, tc.want, m)
			assert.GreaterOrEqual(t, m, 0.0)
			assert.LessOrEqual(t, m, 100.0)
		})
	}
}

func TestMasteryCountsSharedCardPerReference(t *testing.T) {
	t.Parallel()

	best := mustCard(t, "best", "b")
	_, err := best.ChangeScoreBy(BestThreshold)
	require.NoError(t, err)

	d := NewDeck("dup")
	d.AddCard(best)
	d.AddCard(best)
	d.AddCard(mustCard(t, "fresh", "f"))

	// 10 out of 15
	assert.Equal(t, 67.0, d.Mastery())
}

func TestDeckString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Test | MASTERY: 100.0%", NewDeck("Test").String())

	f := newDeckFixture(t)
	_, err := f.c1.ChangeScoreBy(-3)
	require.NoError(t, err)
	_, err = f.c2.ChangeScoreBy(2)
	require.NoError(t, err)
	_, err = f.c3.ChangeScoreBy(BestThreshold)
	require.NoError(t, err)
	assert.Equal(t, "Random Questions #1 | MASTERY: 47.0%", f.d1.String())
}
