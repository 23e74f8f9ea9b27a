package handlers

import (
	"errors"
	"net/http"

	applog "recipebox/internal/log"
	"recipebox/internal/service"
	"recipebox/internal/views/pages"
)

// Login renders the sign-in form and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected, redirecting to index")
			redirectToIndex(w, r)
			return
		}
		renderPage(w, r, "Log in", pages.Login(""))
	case http.MethodPost:
		if !servicesReady(w, r) {
			return
		}
		values, err := formValues(r, "username", "password")
		if err != nil {
			badForm(w, r, err)
			return
		}
		username, password := values[0], values[1]

		user, err := authService.Login(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				applog.Debug(r.Context(), "authentication failed", "username", username)
				addFlash(r, flashDanger, "Invalid username or password. Please try again.")
				redirectToLogin(w, r)
				return
			}
			applog.Error(r.Context(), "failed to load user during login", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		applog.Debug(r.Context(), "authentication succeeded", "userID", user.ID)
		addFlash(r, flashSuccess, "Logged in successfully!")
		redirectToIndex(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for login", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
