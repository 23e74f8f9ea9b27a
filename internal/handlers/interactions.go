package handlers

import (
	"net/http"

	applog "recipebox/internal/log"
)

// FavoriteRecipe marks the recipe as a favorite of the current user.
func FavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := recipeService.AddFavorite(r.Context(), CurrentIdentity(r), id); err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}
	redirectTo(w, r, recipePath(id))
}

// UnfavoriteRecipe removes the recipe from the current user's favorites.
func UnfavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := recipeService.RemoveFavorite(r.Context(), CurrentIdentity(r), id); err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}
	redirectTo(w, r, recipePath(id))
}

// AddComment attaches the posted comment to the recipe.
func AddComment(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	values, err := formValues(r, "comment")
	if err != nil {
		badForm(w, r, err)
		return
	}
	comment, err := recipeService.AddComment(r.Context(), CurrentIdentity(r), id, values[0])
	if err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}
	applog.Debug(r.Context(), "comment stored", "commentID", comment.ID)
	redirectTo(w, r, recipePath(id))
}
