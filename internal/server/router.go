package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recipebox/internal/handlers"
	applog "recipebox/internal/log"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)
	r.HandleFunc("/login", handlers.Login)
	r.HandleFunc("/register", handlers.Register)

	// Every other page needs a logged-in user.
	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireAuthentication)

		r.Get("/", handlers.Index)
		r.HandleFunc("/logout", handlers.Logout)
		r.HandleFunc("/create-recipe", handlers.CreateRecipe)
		r.HandleFunc("/edit-recipe/{id}", handlers.EditRecipe)
		r.Post("/delete-recipe/{id}", handlers.DeleteRecipe)
		r.Get("/view-recipe/{id}", handlers.ViewRecipe)
		r.Post("/favorite/{id}", handlers.FavoriteRecipe)
		r.Post("/favorite/remove/{id}", handlers.UnfavoriteRecipe)
		r.Post("/comment/{id}", handlers.AddComment)
		r.HandleFunc("/search", handlers.Search)
	})

	applog.Debug(context.Background(), "http routes registered")
	return r
}
