package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	applog "recipebox/internal/log"
	"recipebox/internal/service"
)

var errMissingField = errors.New("missing form field")

// formValues returns the posted values for names. Every field must be
// present; an empty value is accepted.
func formValues(r *http.Request, names ...string) ([]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make([]string, len(names))
	for i, name := range names {
		posted, ok := r.PostForm[name]
		if !ok || len(posted) == 0 {
			return nil, errMissingField
		}
		values[i] = posted[0]
	}
	return values, nil
}

func recipeIDParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// serviceFailure maps a failed operation onto a redirect with a flash
// message. Unknown errors become a 500.
func serviceFailure(w http.ResponseWriter, r *http.Request, err error, forbidden, back string) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		addFlash(r, flashInfo, "Please log in to access this page.")
		redirectToLogin(w, r)
	case errors.Is(err, service.ErrNotFound):
		addFlash(r, flashDanger, "Recipe not found.")
		redirectToIndex(w, r)
	case errors.Is(err, service.ErrForbidden):
		addFlash(r, flashDanger, forbidden)
		redirectToIndex(w, r)
	case errors.Is(err, service.ErrInvalidInput):
		addFlash(r, flashDanger, sentence(err.Error()))
		redirectTo(w, r, back)
	default:
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func badForm(w http.ResponseWriter, r *http.Request, err error) {
	applog.Debug(r.Context(), "rejecting form submission", "path", r.URL.Path, "error", err)
	http.Error(w, "invalid form submission", http.StatusBadRequest)
}

func servicesReady(w http.ResponseWriter, r *http.Request) bool {
	if sessionManager == nil || authService == nil || recipeService == nil {
		applog.Debug(r.Context(), "handler dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
		http.Error(w, "service not available", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func sentence(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return message
	}
	first, size := utf8.DecodeRuneInString(message)
	message = string(unicode.ToUpper(first)) + message[size:]
	if !strings.HasSuffix(message, ".") {
		message += "."
	}
	return message
}
