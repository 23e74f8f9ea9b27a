package handlers

import (
	"fmt"
	"net/http"

	applog "recipebox/internal/log"
	"recipebox/internal/service"
	"recipebox/internal/views/pages"
)

// Index lists every recipe together with the user's favorites.
func Index(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	identity := CurrentIdentity(r)

	recipes, err := recipeService.List(r.Context())
	if err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}
	favorites, err := recipeService.Favorites(r.Context(), identity)
	if err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}

	applog.Debug(r.Context(), "rendering recipe index", "recipes", len(recipes), "favorites", len(favorites))
	renderPage(w, r, "Recipes", pages.Index(recipes, favorites, identity.Authenticated()))
}

// CreateRecipe renders the new recipe form and stores submissions.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderPage(w, r, "New recipe", pages.Recipe(pages.NewRecipeForm()))
	case http.MethodPost:
		input, err := recipeInput(r)
		if err != nil {
			badForm(w, r, err)
			return
		}
		if _, err := recipeService.Create(r.Context(), CurrentIdentity(r), input); err != nil {
			serviceFailure(w, r, err, "", "/create-recipe")
			return
		}
		addFlash(r, flashSuccess, "Recipe created successfully!")
		redirectToIndex(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// EditRecipe renders the edit form for the author and applies submitted changes.
func EditRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	identity := CurrentIdentity(r)
	const forbidden = "You don't have permission to edit this recipe."

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		recipe, err := recipeService.View(r.Context(), id)
		if err != nil {
			serviceFailure(w, r, err, forbidden, "/")
			return
		}
		if !recipe.AuthoredBy(identity.UserID) {
			serviceFailure(w, r, service.ErrForbidden, forbidden, "/")
			return
		}
		renderPage(w, r, "Edit recipe", pages.Recipe(pages.EditRecipeForm(*recipe)))
	case http.MethodPost:
		input, err := recipeInput(r)
		if err != nil {
			badForm(w, r, err)
			return
		}
		back := fmt.Sprintf("/edit-recipe/%d", id)
		if _, err := recipeService.Edit(r.Context(), identity, id, input); err != nil {
			serviceFailure(w, r, err, forbidden, back)
			return
		}
		addFlash(r, flashSuccess, "Recipe updated successfully!")
		redirectTo(w, r, recipePath(id))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// DeleteRecipe removes a recipe owned by the current user.
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := recipeService.Delete(r.Context(), CurrentIdentity(r), id); err != nil {
		serviceFailure(w, r, err, "You don't have permission to delete this recipe.", "/")
		return
	}
	addFlash(r, flashSuccess, "Recipe deleted successfully!")
	redirectToIndex(w, r)
}

// ViewRecipe shows one recipe with its comments and favorite state.
func ViewRecipe(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, ok := recipeIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	identity := CurrentIdentity(r)

	detail, err := recipeService.Detail(r.Context(), identity, id)
	if err != nil {
		serviceFailure(w, r, err, "", "/")
		return
	}
	renderPage(w, r, detail.Recipe.Title, pages.RecipeDetail(*detail, identity.Authenticated()))
}

func recipeInput(r *http.Request) (service.RecipeInput, error) {
	values, err := formValues(r, "title", "ingredients", "instructions")
	if err != nil {
		return service.RecipeInput{}, err
	}
	return service.RecipeInput{Title: values[0], Ingredients: values[1], Instructions: values[2]}, nil
}

func recipePath(id uint) string {
	return fmt.Sprintf("/view-recipe/%d", id)
}
