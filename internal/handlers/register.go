package handlers

import (
	"errors"
	"net/http"

	applog "recipebox/internal/log"
	"recipebox/internal/service"
	"recipebox/internal/views/pages"
)

// Register displays the account creation form and processes new registrations.
func Register(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling register request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected during registration, redirecting to index")
			redirectToIndex(w, r)
			return
		}
		renderPage(w, r, "Register", pages.Register(""))
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

		user, err := authService.Register(r.Context(), username, password)
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			addFlash(r, flashDanger, "Username already exists. Please choose a different one.")
			redirectTo(w, r, "/register")
			return
		case err != nil:
			serviceFailure(w, r, err, "", "/register")
			return
		}

		applog.Debug(r.Context(), "user registered", "userID", user.ID)
		addFlash(r, flashSuccess, "Account created successfully! You can now log in.")
		redirectToLogin(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for register", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
