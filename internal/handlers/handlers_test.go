package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"recipebox/internal/db/mock"
	applog "recipebox/internal/log"
	"recipebox/internal/service"
	"recipebox/internal/views/layout"
	"recipebox/models"
)

type harness struct {
	sm *scs.SessionManager
}

// client holds one browser's session across requests.
type client struct {
	t   *testing.T
	ctx context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	originalSM, originalDB := sessionManager, database
	originalAuth, originalRecipes := authService, recipeService

	db, err := mock.NewEmpty(context.Background())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sm := scs.New()
	sessionManager = sm
	database = db
	configureServices(db, service.BcryptHasher{Cost: bcrypt.MinCost})

	t.Cleanup(func() {
		sessionManager, database = originalSM, originalDB
		authService, recipeService = originalAuth, originalRecipes
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &harness{sm: sm}
}

func (h *harness) client(t *testing.T) *client {
	t.Helper()
	ctx, err := h.sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return &client{t: t, ctx: ctx}
}

func (c *client) do(handler http.Handler, method, target string, form url.Values, id string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	req = req.WithContext(context.WithValue(c.ctx, chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (c *client) protected(fn http.HandlerFunc, method, target string, form url.Values, id string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(RequireAuthentication(fn), method, target, form, id)
}

func (c *client) flashes() []layout.Flash {
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(c.ctx)
	return popFlashes(req)
}

func (c *client) lastFlash() layout.Flash {
	c.t.Helper()
	flashes := c.flashes()
	if len(flashes) == 0 {
		c.t.Fatal("expected a flash message")
	}
	return flashes[len(flashes)-1]
}

func (c *client) userID() int {
	return sessionManager.GetInt(c.ctx, sessionUserIDKey)
}

func (h *harness) signedIn(t *testing.T, username string) *client {
	t.Helper()
	c := h.client(t)
	if w := c.do(http.HandlerFunc(Register), http.MethodPost, "/register", url.Values{"username": {username}, "password": {"pw1"}}, ""); w.Code != http.StatusSeeOther {
		t.Fatalf("register %s: unexpected status %d", username, w.Code)
	}
	if w := c.do(http.HandlerFunc(Login), http.MethodPost, "/login", url.Values{"username": {username}, "password": {"pw1"}}, ""); w.Code != http.StatusSeeOther {
		t.Fatalf("login %s: unexpected status %d", username, w.Code)
	}
	c.flashes()
	return c
}

func (h *harness) recipeByTitle(t *testing.T, title string) *models.Recipe {
	t.Helper()
	var recipe models.Recipe
	if err := database.Where("title = ?", title).First(&recipe).Error; err != nil {
		t.Fatalf("failed to load recipe %q: %v", title, err)
	}
	return &recipe
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != want {
		t.Fatalf("expected redirect to %q, got %q", want, loc)
	}
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestRedirectToLoginHonoursHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	redirectToLogin(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for HTMX redirect, got %d", w.Code)
	}
	if w.Header().Get("HX-Redirect") != "/login" {
		t.Fatal("expected HX-Redirect header to be set")
	}

	w = httptest.NewRecorder()
	redirectToLogin(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assertRedirect(t, w, "/login")
}

func TestActiveSessionWithoutManager(t *testing.T) {
	original := sessionManager
	sessionManager = nil
	t.Cleanup(func() { sessionManager = original })

	if ActiveSession(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Fatal("expected inactive session when manager is nil")
	}
}

func TestEstablishSessionWithoutManager(t *testing.T) {
	original := sessionManager
	sessionManager = nil
	t.Cleanup(func() { sessionManager = original })

	if err := establishSession(httptest.NewRequest(http.MethodGet, "/", nil), &models.User{}); err == nil {
		t.Fatal("expected error when session manager is nil")
	}
}

func TestFormValuesRequiresPresence(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=&ingredients=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if _, err := formValues(req, "title", "ingredients"); err != nil {
		t.Fatalf("expected empty title to be accepted: %v", err)
	}
	if _, err := formValues(req, "title", "instructions"); err != errMissingField {
		t.Fatalf("expected errMissingField, got %v", err)
	}
}

func TestSentence(t *testing.T) {
	if got := sentence("invalid input: title too long"); got != "Invalid input: title too long." {
		t.Fatalf("unexpected sentence %q", got)
	}
	if got := sentence(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRegisterFlow(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	w := c.do(http.HandlerFunc(Register), http.MethodGet, "/register", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `action="/register"`) {
		t.Fatalf("expected register form, got %d", w.Code)
	}

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	assertRedirect(t, c.do(http.HandlerFunc(Register), http.MethodPost, "/register", form, ""), "/login")
	if flash := c.lastFlash(); flash.Category != flashSuccess || flash.Message != "Account created successfully! You can now log in." {
		t.Fatalf("unexpected flash %+v", flash)
	}

	assertRedirect(t, c.do(http.HandlerFunc(Register), http.MethodPost, "/register", form, ""), "/register")
	if flash := c.lastFlash(); flash.Category != flashDanger {
		t.Fatalf("expected danger flash for duplicate username, got %+v", flash)
	}

	w = c.do(http.HandlerFunc(Register), http.MethodPost, "/register", url.Values{"username": {"bob"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	if _, err := authService.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	assertRedirect(t, c.do(http.HandlerFunc(Login), http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"nope"}}, ""), "/login")
	if flash := c.lastFlash(); flash.Message != "Invalid username or password. Please try again." {
		t.Fatalf("unexpected flash %+v", flash)
	}
	if c.userID() != 0 {
		t.Fatal("expected no session identity after failed login")
	}

	assertRedirect(t, c.do(http.HandlerFunc(Login), http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}}, ""), "/")
	if c.userID() == 0 {
		t.Fatal("expected session identity after login")
	}
	if flash := c.lastFlash(); flash.Message != "Logged in successfully!" {
		t.Fatalf("unexpected flash %+v", flash)
	}

	assertRedirect(t, c.do(http.HandlerFunc(Login), http.MethodGet, "/login", nil, ""), "/")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t, "alice")

	assertRedirect(t, c.do(http.HandlerFunc(Logout), http.MethodGet, "/logout", nil, ""), "/login")
	if c.userID() != 0 {
		t.Fatal("expected session identity to be cleared")
	}
	if flash := c.lastFlash(); flash.Message != "Logged out successfully!" {
		t.Fatalf("unexpected flash %+v", flash)
	}

	w := c.do(http.HandlerFunc(Logout), http.MethodDelete, "/logout", nil, "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestRequireAuthenticationRedirectsAnonymous(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	called := false
	handler := RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	assertRedirect(t, c.do(handler, http.MethodGet, "/", nil, ""), "/login")
	if called {
		t.Fatal("expected protected handler not to run")
	}
	if flash := c.lastFlash(); flash.Message != "Please log in to access this page." {
		t.Fatalf("unexpected flash %+v", flash)
	}
}

func TestRequireAuthenticationClearsStaleSession(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	sessionManager.Put(c.ctx, sessionUserIDKey, 999)

	logs := new(bytes.Buffer)
	original := applog.Logger()
	applog.ReplaceLogger(slog.New(slog.NewTextHandler(logs, nil)))
	t.Cleanup(func() { applog.ReplaceLogger(original) })

	assertRedirect(t, c.protected(Index, http.MethodGet, "/", nil, ""), "/login")
	if c.userID() != 0 {
		t.Fatal("expected stale user id to be removed")
	}
	if line := logs.String(); !strings.Contains(line, "level=WARN") || !strings.Contains(line, "userID=999") {
		t.Fatalf("expected warning for unknown session user, got %q", line)
	}
}

func TestRequireAuthenticationProvidesIdentity(t *testing.T) {
	h := newHarness(t)
	c := h.signedIn(t, "alice")

	var got service.Identity
	handler := RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CurrentIdentity(r)
	}))
	c.do(handler, http.MethodGet, "/", nil, "")
	if got.Username != "alice" || !got.Authenticated() {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestRecipeLifecycle(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")

	form := url.Values{"title": {"Soup"}, "ingredients": {"water,salt"}, "instructions": {"boil it"}}
	assertRedirect(t, alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", form, ""), "/")
	if flash := alice.lastFlash(); flash.Message != "Recipe created successfully!" {
		t.Fatalf("unexpected flash %+v", flash)
	}
	recipe := h.recipeByTitle(t, "Soup")
	id := strconv.FormatUint(uint64(recipe.ID), 10)

	w := alice.protected(Index, http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Soup") {
		t.Fatalf("expected index to list the recipe, got %d", w.Code)
	}

	w = alice.protected(ViewRecipe, http.MethodGet, "/view-recipe/"+id, nil, id)
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "boil it") || !strings.Contains(body, "/edit-recipe/"+id) {
		t.Fatalf("expected recipe detail with edit link, got %d: %s", w.Code, body)
	}

	w = alice.protected(EditRecipe, http.MethodGet, "/edit-recipe/"+id, nil, id)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `value="Soup"`) {
		t.Fatalf("expected pre-filled edit form, got %d", w.Code)
	}

	edit := url.Values{"title": {"Stew"}, "ingredients": {"beef"}, "instructions": {""}}
	assertRedirect(t, alice.protected(EditRecipe, http.MethodPost, "/edit-recipe/"+id, edit, id), "/view-recipe/"+id)
	if updated := h.recipeByTitle(t, "Stew"); updated.Instructions != "" || !updated.CreatedAt.Equal(recipe.CreatedAt) {
		t.Fatalf("unexpected updated recipe %+v", updated)
	}
	alice.flashes()

	assertRedirect(t, alice.protected(DeleteRecipe, http.MethodPost, "/delete-recipe/"+id, url.Values{}, id), "/")
	if flash := alice.lastFlash(); flash.Message != "Recipe deleted successfully!" {
		t.Fatalf("unexpected flash %+v", flash)
	}

	assertRedirect(t, alice.protected(ViewRecipe, http.MethodGet, "/view-recipe/"+id, nil, id), "/")
	if flash := alice.lastFlash(); flash.Category != flashDanger {
		t.Fatalf("expected not found flash, got %+v", flash)
	}
}

func TestNonAuthorCannotEditOrDelete(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")
	bob := h.signedIn(t, "bob")

	form := url.Values{"title": {"Soup"}, "ingredients": {"water"}, "instructions": {"boil"}}
	alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", form, "")
	recipe := h.recipeByTitle(t, "Soup")
	id := strconv.FormatUint(uint64(recipe.ID), 10)

	edit := url.Values{"title": {"X"}, "ingredients": {"y"}, "instructions": {"z"}}
	assertRedirect(t, bob.protected(EditRecipe, http.MethodPost, "/edit-recipe/"+id, edit, id), "/")
	if flash := bob.lastFlash(); flash.Message != "You don't have permission to edit this recipe." {
		t.Fatalf("unexpected flash %+v", flash)
	}

	assertRedirect(t, bob.protected(EditRecipe, http.MethodGet, "/edit-recipe/"+id, nil, id), "/")
	bob.flashes()

	assertRedirect(t, bob.protected(DeleteRecipe, http.MethodPost, "/delete-recipe/"+id, url.Values{}, id), "/")
	if flash := bob.lastFlash(); flash.Message != "You don't have permission to delete this recipe." {
		t.Fatalf("unexpected flash %+v", flash)
	}

	if unchanged := h.recipeByTitle(t, "Soup"); unchanged.Ingredients != "water" {
		t.Fatalf("expected recipe to be unchanged, got %+v", unchanged)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")

	w := alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", url.Values{"title": {"Soup"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", w.Code)
	}

	long := url.Values{"title": {strings.Repeat("a", 101)}, "ingredients": {""}, "instructions": {""}}
	assertRedirect(t, alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", long, ""), "/create-recipe")
	if flash := alice.lastFlash(); flash.Category != flashDanger {
		t.Fatalf("expected danger flash, got %+v", flash)
	}

	w = alice.protected(CreateRecipe, http.MethodGet, "/create-recipe", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `action="/create-recipe"`) {
		t.Fatalf("expected create form, got %d", w.Code)
	}
}

func TestInvalidRecipeIDIsNotFound(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")

	for _, fn := range []http.HandlerFunc{ViewRecipe, EditRecipe, DeleteRecipe, FavoriteRecipe, UnfavoriteRecipe, AddComment} {
		w := alice.protected(fn, http.MethodPost, "/x/abc", url.Values{}, "abc")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for non-numeric id, got %d", w.Code)
		}
	}
}

func TestFavoritesAndComments(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")
	bob := h.signedIn(t, "bob")

	alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", url.Values{"title": {"Soup"}, "ingredients": {"water"}, "instructions": {"boil"}}, "")
	recipe := h.recipeByTitle(t, "Soup")
	id := strconv.FormatUint(uint64(recipe.ID), 10)
	view := "/view-recipe/" + id

	assertRedirect(t, bob.protected(FavoriteRecipe, http.MethodPost, "/favorite/"+id, url.Values{}, id), view)
	assertRedirect(t, bob.protected(FavoriteRecipe, http.MethodPost, "/favorite/"+id, url.Values{}, id), view)

	w := bob.protected(Index, http.MethodGet, "/", nil, "")
	if !strings.Contains(w.Body.String(), "Your favorites") || strings.Contains(w.Body.String(), "You have not favorited") {
		t.Fatalf("expected favorites section to list the recipe: %s", w.Body.String())
	}

	assertRedirect(t, bob.protected(UnfavoriteRecipe, http.MethodPost, "/favorite/remove/"+id, url.Values{}, id), view)
	assertRedirect(t, bob.protected(UnfavoriteRecipe, http.MethodPost, "/favorite/remove/"+id, url.Values{}, id), view)

	assertRedirect(t, bob.protected(AddComment, http.MethodPost, "/comment/"+id, url.Values{"comment": {"<b>tasty</b>"}}, id), view)
	w = alice.protected(ViewRecipe, http.MethodGet, view, nil, id)
	if !strings.Contains(w.Body.String(), "&lt;b&gt;tasty&lt;/b&gt;") || !strings.Contains(w.Body.String(), "bob") {
		t.Fatalf("expected escaped comment with author: %s", w.Body.String())
	}

	w = bob.protected(AddComment, http.MethodPost, "/comment/"+id, url.Values{}, id)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing comment, got %d", w.Code)
	}

	assertRedirect(t, bob.protected(FavoriteRecipe, http.MethodPost, "/favorite/9999", url.Values{}, "9999"), "/")
	if flash := bob.lastFlash(); flash.Message != "Recipe not found." {
		t.Fatalf("unexpected flash %+v", flash)
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t)
	alice := h.signedIn(t, "alice")
	alice.protected(CreateRecipe, http.MethodPost, "/create-recipe", url.Values{"title": {"Soup"}, "ingredients": {"water,salt"}, "instructions": {"boil it"}}, "")

	w := alice.protected(Search, http.MethodGet, "/search", nil, "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "Results for") {
		t.Fatalf("expected empty search form, got %d", w.Code)
	}

	w = alice.protected(Search, http.MethodPost, "/search", url.Values{"query": {"soup"}}, "")
	if !strings.Contains(w.Body.String(), ">Soup</a>") {
		t.Fatalf("expected soup in results: %s", w.Body.String())
	}

	w = alice.protected(Search, http.MethodGet, "/search?query=pizza", nil, "")
	if strings.Contains(w.Body.String(), ">Soup</a>") || !strings.Contains(w.Body.String(), "No recipes matched") {
		t.Fatalf("expected no results for pizza: %s", w.Body.String())
	}
}
