package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-file-manager/internal/config"
	"go-file-manager/internal/handler"
	"go-file-manager/internal/middleware"
	"go-file-manager/internal/websocket"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Directory  *handler.DirectoryHandler
	Operations *handler.OperationsHandler
	Search     *handler.SearchHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWS(hub, w, r)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/auth/login", handlers.Auth.Login)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/files", handlers.Directory.List)
			protected.Put("/files/rename", handlers.Operations.Rename)
			protected.Put("/files/move", handlers.Operations.Move)
			protected.Post("/files/copy", handlers.Operations.Copy)
			protected.Post("/files/touch", handlers.Operations.Touch)
			protected.Delete("/files", handlers.Operations.Delete)
			protected.Post("/directories", handlers.Operations.Mkdir)

			protected.Post("/undo", handlers.Operations.Undo)

			protected.Get("/clipboard", handlers.Operations.GetClipboard)
			protected.Post("/clipboard", handlers.Operations.SetClipboard)
			protected.Delete("/clipboard", handlers.Operations.ClearClipboard)
			protected.Post("/clipboard/paste", handlers.Operations.Paste)

			protected.Post("/search", handlers.Search.Start)
			protected.Get("/search/{id}", handlers.Search.Poll)
			protected.Delete("/search/{id}", handlers.Search.Cancel)
		})
	})

	return r
}
