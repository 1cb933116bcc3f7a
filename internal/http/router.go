package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"versefinder/internal/auth"
	"versefinder/internal/handlers"
	"versefinder/internal/service"
	"versefinder/internal/storage"
	"versefinder/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AskService          service.AskService
	ConversationService service.ConversationService
	LibraryService      service.LibraryService
	Questions           storage.QuestionStore
	Verifier            auth.Verifier
	DB                  *sql.DB
	VectorStore         vectorstore.VectorStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.AskService)
	passagesHandler := handlers.NewPassagesHandler(deps.AskService)
	conversationsHandler := handlers.NewConversationsHandler(deps.ConversationService)
	booksHandler := handlers.NewBooksHandler(deps.LibraryService)
	questionsHandler := handlers.NewQuestionsHandler(deps.Questions)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.Verifier))

			r.Method(http.MethodPost, "/ask", askHandler)
			r.Post("/passages/full", passagesHandler.Full)

			r.Get("/conversations", conversationsHandler.List)
			r.Get("/conversations/{id}", conversationsHandler.Get)
			r.Delete("/conversations/{id}", conversationsHandler.Delete)

			r.Get("/books", booksHandler.List)
			r.Get("/questions/random", questionsHandler.Random)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Post("/books/upload", booksHandler.Upload)
				r.Delete("/books/{id}", booksHandler.Delete)
			})
		})
	})

	return r
}
