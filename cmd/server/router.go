package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/casafind/casafind-api/internal/api"
	apiMiddleware "github.com/casafind/casafind-api/internal/api/middleware"
	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/domain"
)

// routeHandlers groups the handlers mounted by setupRouter.
type routeHandlers struct {
	auth       *api.AuthHandler
	properties *api.PropertyHandler
	favorites  *api.FavoriteHandler
	messages   *api.MessageHandler
	reviews    *api.ReviewHandler
}

// setupRouter creates the application router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	h := app.handlers()
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(apiMiddleware.RateLimit(app.limiter, "auth"))
			r.Post("/register", h.auth.Register)
			r.Post("/login", h.auth.Login)
			r.With(authMiddleware.Authenticate).Get("/verify", h.auth.Verify)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.properties.Search)
			r.Get("/search", h.properties.Search)
			r.Get("/{id}", h.properties.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.With(apiMiddleware.RequireRole(domain.RoleOwner)).Get("/mine", h.properties.ListMine)
				r.Post("/", h.properties.Create)
				r.Put("/{id}", h.properties.Update)
				r.Delete("/{id}", h.properties.Delete)
				r.Post("/{id}/images", h.properties.UploadImage)
				r.Delete("/{id}/images/{imageId}", h.properties.DeleteImage)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", h.favorites.List)
			r.Post("/toggle/{propertyId}", h.favorites.Toggle)
			r.Post("/{propertyId}", h.favorites.Add)
			r.Delete("/{propertyId}", h.favorites.Remove)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", h.messages.List)
			r.Post("/", h.messages.Send)
			r.Get("/conversation/{propertyId}/{userId}", h.messages.Conversation)
			r.Get("/{id}", h.messages.Get)
			r.Put("/{id}/read", h.messages.MarkRead)
			r.Delete("/{id}", h.messages.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/property/{propertyId}", h.reviews.ListByProperty)
			r.Get("/user/{userId}", h.reviews.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", h.reviews.Create)
				r.Put("/{id}", h.reviews.Update)
				r.Delete("/{id}", h.reviews.Delete)
			})
		})
	})

	return r
}
