package jsonfile

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(t *testing.T, front, back string, score int) *domain.Card {
	t.Helper()
	c, err := domain.NewCard(front, back)
	require.NoError(t, err)
	_, err = c.ChangeScoreBy(score)
	require.NoError(t, err)
	return c
}

func sampleDecks(t *testing.T) []*domain.Deck {
	t.Helper()

	trivia := domain.NewDeck("Cool Trivia")
	trivia.AddCard(card(t, "What is the name of this application?", "Flashcards", 5))
	trivia.AddCard(card(t, "Consider f(x) = x^2 + 2x + 1. What are the roots?", "x=-1", -3))

	random := domain.NewDeck("Random Questions #1")
	random.AddCard(card(t, "What is 1+1?", "2", 0))
	random.AddCard(card(t, "Where is UBC located?", "Vancouver, BC", 2))

	return []*domain.Deck{trivia, domain.NewDeck("Empty"), random}
}

type deckShape struct {
	Name  string
	Cards []cardShape
}

type cardShape struct {
	Front, Back string
	Score       int
}

func shapeOf(decks []*domain.Deck) []deckShape {
	out := make([]deckShape, 0, len(decks))
	for _, d := range decks {
		ds := deckShape{Name: d.Name(), Cards: []cardShape{}}
		for _, c := range d.Cards() {
			ds.Cards = append(ds.Cards, cardShape{Front: c.Front(), Back: c.Back(), Score: c.Score()})
		}
		out = append(out, ds)
	}
	return out
}

func assertSameDecks(t *testing.T, want, got []*domain.Deck) {
	t.Helper()

	if diff := cmp.Diff(shapeOf(want), shapeOf(got)); diff != "" {
		t.Errorf("decks mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		decks func(t *testing.T) []*domain.Deck
	}{
		{name: "no decks", decks: func(*testing.T) []*domain.Deck { return nil }},
		{name: "one empty deck", decks: func(*testing.T) []*domain.Deck {
			return []*domain.Deck{domain.NewDeck("Test")}
		}},
		{name: "several decks", decks: sampleDecks},
		{name: "unicode and html characters", decks: func(t *testing.T) []*domain.Deck {
			d := domain.NewDeck("<b>Français</b> & more")
			d.AddCard(card(t, "¿Qué?", "\"quoted\"\nnewline", 1))
			return []*domain.Deck{d}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.decks(t)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, want))

			got, err := Decode(&buf)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assertSameDecks(t, want, got)
		})
	}
}

func TestEncodeDocumentShape(t *testing.T) {
	t.Parallel()

	d := domain.NewDeck("Test")
	d.AddCard(card(t, "Q", "A", -2))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*domain.Deck{d}))

	want := `{
    "decks": [
        {
            "name": "Test",
            "flashcards": [
                {
                    "front": "Q",
                    "back": "A",
                    "score": -2
                }
            ]
        }
    ]
}
`
	assert.Equal(t, want, buf.String())

	var empty bytes.Buffer
	require.NoError(t, Encode(&empty, nil))
	assert.JSONEq(t, `{"decks": []}`, empty.String())
}

func TestEncodeDuplicatesSharedCards(t *testing.T) {
	t.Parallel()

	shared := card(t, "shared", "card", 3)
	a := domain.NewDeck("a")
	a.AddCard(shared)
	a.AddCard(shared)
	b := domain.NewDeck("b")
	b.AddCard(shared)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*domain.Deck{a, b}))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first, err := got[0].NthCard(1)
	require.NoError(t, err)
	second, err := got[0].NthCard(2)
	require.NoError(t, err)
	assert.NotSame(t, first, second, "each occurrence loads as its own card")
	assert.Equal(t, 3, second.Score())
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty input", doc: ""},
		{name: "not json", doc: "decks: []"},
		{name: "truncated", doc: `{"decks": [{"name": "a", "flashcards": [`},
		{name: "trailing data", doc: `{"decks": []} {"decks": []}`},
		{name: "top level array", doc: `[]`},
		{name: "missing decks", doc: `{}`},
		{name: "null decks", doc: `{"decks": null}`},
		{name: "decks not array", doc: `{"decks": {}}`},
		{name: "missing name", doc: `{"decks": [{"flashcards": []}]}`},
		{name: "name not string", doc: `{"decks": [{"name": 3, "flashcards": []}]}`},
		{name: "missing flashcards", doc: `{"decks": [{"name": "a"}]}`},
		{name: "missing front", doc: `{"decks": [{"name": "a", "flashcards": [{"back": "b", "score": 0}]}]}`},
		{name: "missing back", doc: `{"decks": [{"name": "a", "flashcards": [{"front": "f", "score": 0}]}]}`},
		{name: "missing score", doc: `{"decks": [{"name": "a", "flashcards": [{"front": "f", "back": "b"}]}]}`},
		{name: "score not integer", doc: `{"decks": [{"name": "a", "flashcards": [{"front": "f", "back": "b", "score": "1"}]}]}`},
		{name: "score fractional", doc: `{"decks": [{"name": "a", "flashcards": [{"front": "f", "back": "b", "score": 1.5}]}]}`},
		{name: "null card", doc: `{"decks": [{"name": "a", "flashcards": [null]}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrMalformed)
			assert.ErrorIs(t, err, store.ErrIO)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeRevalidatesCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		card    string
		wantErr error
	}{
		{name: "empty front", card: `{"front": "", "back": "b", "score": 0}`, wantErr: domain.ErrInvalidCard},
		{name: "empty back", card: `{"front": "f", "back": "", "score": 0}`, wantErr: domain.ErrInvalidCard},
		{name: "score above best", card: `{"front": "f", "back": "b", "score": 6}`, wantErr: domain.ErrThresholdExceeded},
		{name: "score below worst", card: `{"front": "f", "back": "b", "score": -4}`, wantErr: domain.ErrThresholdExceeded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := `{"decks": [{"name": "a", "flashcards": [` + tc.card + `]}]}`
			got, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NotErrorIs(t, err, store.ErrIO)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeIsAllOrNothing(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"decks": []any{
			map[string]any{
				"name": "good",
				"flashcards": []any{
					map[string]any{"front": "f", "back": "b", "score": 5},
				},
			},
			map[string]any{
				"name": "bad",
				"flashcards": []any{
					map[string]any{"front": "f", "back": "b", "score": 1},
					map[string]any{"front": "f", "back": "b", "score": 99},
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, domain.ErrThresholdExceeded)
	assert.Contains(t, err.Error(), "deck 2 card 2")
	assert.Nil(t, got)
}

func TestDecodeAcceptsBoundaryScoresAndExtraFields(t *testing.T) {
	t.Parallel()

	doc := `{
		"version": 1,
		"decks": [
			{"name": "", "flashcards": [
				{"front": "f", "back": "b", "score": 5, "note": "ignored"},
				{"front": "f", "back": "b", "score": -3}
			]}
		]
	}`

	got, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Name())

	cards := got[0].Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, domain.BestThreshold, cards[0].Score())
	assert.Equal(t, domain.WorstThreshold, cards[1].Score())
}
