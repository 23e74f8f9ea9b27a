package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	applog "recipebox/internal/log"
	"recipebox/internal/repository"
	"recipebox/internal/service"
	"recipebox/models"
)

const (
	sessionUserIDKey   = "auth:user:id"
	sessionUserNameKey = "auth:user:name"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	authService    *service.Auth
	recipeService  *service.Recipes
)

type identityKey struct{}

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
	configureServices(db, service.BcryptHasher{})
}

func configureServices(db *gorm.DB, hasher service.PasswordHasher) {
	if db == nil {
		authService = nil
		recipeService = nil
		return
	}
	store := repository.New(db)
	authService = service.NewAuth(store.Users, hasher)
	recipeService = service.NewRecipes(store)
}

func establishSession(r *http.Request, user *models.User) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	sessionManager.Put(r.Context(), sessionUserIDKey, int(user.ID))
	sessionManager.Put(r.Context(), sessionUserNameKey, user.Username)
	return nil
}

func clearSession(r *http.Request) {
	if sessionManager == nil {
		return
	}
	sessionManager.Remove(r.Context(), sessionUserIDKey)
	sessionManager.Remove(r.Context(), sessionUserNameKey)
}

// RequireAuthentication resolves the session into an identity for the
// wrapped handler and sends anonymous visitors to the login page.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authService == nil {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		userID, ok := currentUserID(r)
		if !ok {
			applog.Debug(r.Context(), "no active session", "path", r.URL.Path)
			addFlash(r, flashInfo, "Please log in to access this page.")
			redirectToLogin(w, r)
			return
		}

		identity, err := authService.Identify(r.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrAuthRequired) {
				applog.Warn(r.Context(), "session refers to unknown user", "userID", userID)
				clearSession(r)
				addFlash(r, flashInfo, "Please log in to access this page.")
				redirectToLogin(w, r)
				return
			}
			applog.Error(r.Context(), "failed to resolve session identity", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		ctx = applog.WithAttrs(ctx, "userID", identity.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentIdentity returns the identity resolved by RequireAuthentication, or
// the anonymous identity outside protected routes.
func CurrentIdentity(r *http.Request) service.Identity {
	identity, _ := r.Context().Value(identityKey{}).(service.Identity)
	return identity
}

// Logout destroys the current session and redirects the user to the login screen.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}

	addFlash(r, flashSuccess, "Logged out successfully!")
	redirectToLogin(w, r)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/login")
}

func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/")
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// ActiveSession returns true when the current request has an authenticated session.
func ActiveSession(r *http.Request) bool {
	_, ok := currentUserID(r)
	return ok
}

func currentUserID(r *http.Request) (uint, bool) {
	if sessionManager == nil {
		return 0, false
	}
	id := sessionManager.GetInt(r.Context(), sessionUserIDKey)
	if id <= 0 {
		return 0, false
	}
	return uint(id), true
}
