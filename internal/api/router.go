package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/phrazzld/flashdeck/internal/service"
)

// NewRouter creates the application router with all routes and middleware.
func NewRouter(library *service.Library, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	deckHandler := NewDeckHandler(library, logger)
	libraryHandler := NewLibraryHandler(library, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)

			r.Route("/{name}", func(r chi.Router) {
				r.Delete("/", deckHandler.DeleteDeck)
				r.Get("/cards", deckHandler.ListCards)
				r.Post("/cards", deckHandler.AddCard)
				r.Delete("/cards/{n}", deckHandler.RemoveCard)
				r.Post("/cards/{n}/answer", deckHandler.AnswerCard)
			})
		})

		r.Post("/library/save", libraryHandler.Save)
		r.Post("/library/load", libraryHandler.Load)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
