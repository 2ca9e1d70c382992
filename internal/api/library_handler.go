package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

// LibraryResponse is the body of the /api/library endpoints.
type LibraryResponse struct {
	Status  string  `json:"status"`
	Decks   int     `json:"decks"`
	Mastery float64 `json:"mastery"`
}

// LibraryHandler handles whole-library persistence requests.
type LibraryHandler struct {
	library *service.Library
	logger  *slog.Logger
}

// NewLibraryHandler creates a new LibraryHandler
func NewLibraryHandler(library *service.Library, logger *slog.Logger) *LibraryHandler {
	if library == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("library cannot be nil for LibraryHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LibraryHandler{
		library: library,
		logger:  logger.With(slog.String("component", "library_handler")),
	}
}

// Save handles POST /api/library/save
func (h *LibraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.library.Save(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to save library", err)
		return
	}

	log.Info("library saved via API")
	h.respond(w, r, "saved")
}

// Load handles POST /api/library/load. A failed load leaves the library as
// it was.
func (h *LibraryHandler) Load(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.library.Load(r.Context()); err != nil {
		if isInvalidStoredData(err) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Stored library is invalid", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load library", err)
		return
	}

	log.Info("library loaded via API")
	h.respond(w, r, "loaded")
}

// isInvalidStoredData reports whether a load failed because of what was
// stored rather than because storage was unreachable.
func isInvalidStoredData(err error) bool {
	return errors.Is(err, store.ErrMalformed) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, domain.ErrInvalidCard) ||
		errors.Is(err, domain.ErrThresholdExceeded)
}

func (h *LibraryHandler) respond(w http.ResponseWriter, r *http.Request, status string) {
	shared.RespondWithJSON(w, r, http.StatusOK, LibraryResponse{
		Status:  status,
		Decks:   len(h.library.Decks()),
		Mastery: h.library.Mastery(),
	})
}
