package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// errInvalidPosition is returned when the {n} path parameter is not an integer.
var errInvalidPosition = errors.New("card position must be an integer")

// CreateDeckRequest is the body of POST /api/decks.
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// AddCardRequest is the body of POST /api/decks/{name}/cards.
type AddCardRequest struct {
	Front string `json:"front" validate:"required,max=2000"`
	Back  string `json:"back" validate:"required,max=2000"`
}

// AnswerRequest is the body of POST /api/decks/{name}/cards/{n}/answer.
type AnswerRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=correct incorrect"`
}

// DeckListResponse is the body of GET /api/decks.
type DeckListResponse struct {
	Decks   []service.DeckSummary `json:"decks"`
	Mastery float64               `json:"mastery"`
}

// DeckCardsResponse is the body of GET /api/decks/{name}/cards.
type DeckCardsResponse service.DeckDetail

// AnswerResponse is the body of POST /api/decks/{name}/cards/{n}/answer.
type AnswerResponse struct {
	Outcome     string              `json:"outcome"`
	ScoreBefore int                 `json:"score_before"`
	ScoreAfter  int                 `json:"score_after"`
	Notice      string              `json:"notice,omitempty"`
	Deck        service.DeckSummary `json:"deck"`
}

// DeckHandler handles deck and card HTTP requests
type DeckHandler struct {
	library *service.Library
	logger  *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(library *service.Library, logger *slog.Logger) *DeckHandler {
	if library == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("library cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		library: library,
		logger:  logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{
		Decks:   h.library.Decks(),
		Mastery: h.library.Mastery(),
	})
}

// CreateDeck handles POST /api/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.library.CreateDeck(r.Context(), req.Name)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("deck created via API", slog.String("deck", deck.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// DeleteDeck handles DELETE /api/decks/{name}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := h.library.DeleteDeck(r.Context(), deckName(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCards handles GET /api/decks/{name}/cards
func (h *DeckHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	detail, err := h.library.DeckDetail(deckName(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeckCardsResponse(detail))
}

// AddCard handles POST /api/decks/{name}/cards
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req AddCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.library.AddCard(r.Context(), deckName(r), req.Front, req.Back)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// RemoveCard handles DELETE /api/decks/{name}/cards/{n}
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	n, ok := cardPosition(w, r)
	if !ok {
		return
	}

	card, err := h.library.RemoveCard(r.Context(), deckName(r), n)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// AnswerCard handles POST /api/decks/{name}/cards/{n}/answer
func (h *DeckHandler) AnswerCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	n, ok := cardPosition(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	name := deckName(r)
	res, err := h.library.Answer(r.Context(), name, n, review.Outcome(req.Outcome))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	deck, err := h.library.Deck(name)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	log.Debug("answer recorded",
		slog.String("deck", name),
		slog.Int("position", n),
		slog.String("outcome", req.Outcome),
		slog.Int("score", res.After))

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Outcome:     string(res.Outcome),
		ScoreBefore: res.Before,
		ScoreAfter:  res.After,
		Notice:      res.Notice,
		Deck:        deck,
	})
}

// deckName returns the {name} path parameter, unescaped when chi routed on
// the raw path.
func deckName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// cardPosition parses the {n} path parameter, writing a 400 response when it
// is not an integer.
func cardPosition(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid card position", errInvalidPosition)
		return 0, false
	}
	return n, true
}

// decodeAndValidate decodes the body into req and validates it, writing a
// 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
