package main

import (
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/jsonfile"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDeckAndCardEdits(t *testing.T) {
	path := useFileConfig(t)

	cmd, out := newTestCommand("")
	require.NoError(t, runDeckCreate(cmd, []string{" Math "}))
	assert.Equal(t, "Created deck Math\n", out.String())

	cmd, out = newTestCommand("")
	require.NoError(t, runCardAdd(cmd, []string{"Math", "What is 1+1?", "2"}))
	assert.Equal(t, "Added card 1: What is 1+1?\n", out.String())

	cmd, _ = newTestCommand("")
	require.NoError(t, runCardAdd(cmd, []string{"Math", "What is 2+2?", "4"}))

	cmd, out = newTestCommand("")
	require.NoError(t, runDeckShow(cmd, []string{"Math"}))
	assert.Equal(t, "Math | MASTERY: 0.0%\n1: What is 1+1?\n2: What is 2+2?\n", out.String())

	cmd, out = newTestCommand("")
	require.NoError(t, runCardRm(cmd, []string{"Math", "1"}))
	assert.Equal(t, "Removed card 1: What is 1+1?\n", out.String())

	decks, err := jsonfile.LoadDecks(path)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "Math", decks[0].Name())
	require.Equal(t, 1, decks[0].NumCards())
	assert.Equal(t, "What is 2+2?", decks[0].Cards()[0].Front())

	cmd, out = newTestCommand("")
	require.NoError(t, runDeckRm(cmd, []string{"Math"}))
	assert.Equal(t, "Removed deck Math\n", out.String())

	decks, err = jsonfile.LoadDecks(path)
	require.NoError(t, err)
	assert.Empty(t, decks)
}

func TestRunDeckAndCardEditErrors(t *testing.T) {
	path := useFileConfig(t)
	seedLibrary(t, path)

	cmd, _ := newTestCommand("")
	assert.ErrorIs(t, runDeckCreate(cmd, []string{"Cool Trivia"}), service.ErrDeckExists)
	assert.ErrorIs(t, runDeckRm(cmd, []string{"Nope"}), service.ErrDeckNotFound)
	assert.ErrorIs(t, runDeckShow(cmd, []string{"Nope"}), service.ErrDeckNotFound)
	assert.ErrorIs(t, runCardAdd(cmd, []string{"Cool Trivia", " ", "b"}), domain.ErrInvalidCard)
	assert.ErrorIs(t, runCardRm(cmd, []string{"Cool Trivia", "3"}), domain.ErrIndexOutOfRange)

	err := runCardRm(cmd, []string{"Cool Trivia", "first"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid card number")

	// failed edits leave the saved library untouched
	decks, err := jsonfile.LoadDecks(path)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, 2, decks[0].NumCards())
}
