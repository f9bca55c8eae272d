package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/phrazzld/mesto-api/internal/api"
	apiMiddleware "github.com/phrazzld/mesto-api/internal/api/middleware"
	"github.com/phrazzld/mesto-api/internal/api/shared"
)

// msgTooManyRequests is returned when a client exceeds the auth rate limit.
const msgTooManyRequests = "Too many requests, please try again later"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "DENY"))

	authHandler := api.NewAuthHandler(
		app.userService,
		app.tokenService,
		app.config.Server.IsProduction(),
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, api.HandleAPIError)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			app.config.Auth.RateLimitRequests,
			app.config.Auth.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				shared.RespondWithError(w, r, http.StatusTooManyRequests, msgTooManyRequests)
			}),
		))
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithMessage(w, r, http.StatusOK, "OK")
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/me", userHandler.Me)
			r.Patch("/me", userHandler.UpdateProfile)
			r.Patch("/me/avatar", userHandler.UpdateAvatar)
			r.Get("/{userId}", userHandler.Get)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.List)
			r.Post("/", cardHandler.Create)
			r.Delete("/{cardId}", cardHandler.Delete)
			r.Put("/{cardId}/likes", cardHandler.Like)
			r.Delete("/{cardId}/likes", cardHandler.Unlike)
		})
	})

	r.NotFound(api.NotFoundHandler)
	r.MethodNotAllowed(api.NotFoundHandler)

	return r
}
