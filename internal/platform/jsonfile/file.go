package jsonfile

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// LoadDecks reads and decodes the document at path. See Decode for the
// validation rules. A file that cannot be opened or read returns an error
// matching store.ErrIO.
func LoadDecks(path string) ([]*domain.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, store.NewStoreError("load", path, err)
	}

	decks, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return decks, nil
}

// SaveDecks encodes decks and atomically replaces the file at path: the
// document goes to a temporary file in the same directory, is synced, and is
// then renamed over path. A failure leaves any previous file intact.
func SaveDecks(path string, decks []*domain.Deck) error {
	var buf bytes.Buffer
	if err := Encode(&buf, decks); err != nil {
		return err
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return store.NewStoreError("save", path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if base == "" {
		return fmt.Errorf("destination %q is a directory", path)
	}
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Store implements store.DeckStore over a single JSON file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a Store for the file at path.
// If logger is nil, a default logger will be used.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "jsonfile_store")),
	}
}

// Ensure Store implements store.DeckStore interface
var _ store.DeckStore = (*Store)(nil)

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load implements store.DeckStore.Load.
func (s *Store) Load(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decks, err := LoadDecks(s.path)
	if err != nil {
		log.Warn("failed to load decks", slog.String("path", s.path), slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded decks", slog.String("path", s.path), slog.Int("deck_count", len(decks)))
	return decks, nil
}

// Save implements store.DeckStore.Save.
func (s *Store) Save(ctx context.Context, decks []*domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := SaveDecks(s.path, decks); err != nil {
		log.Error("failed to save decks", slog.String("path", s.path), slog.String("error", err.Error()))
		return err
	}

	log.Debug("saved decks", slog.String("path", s.path), slog.Int("deck_count", len(decks)))
	return nil
}
