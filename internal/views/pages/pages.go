// Package pages holds the page bodies rendered inside the application layout.
package pages

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/a-h/templ"

	"recipebox/internal/service"
	"recipebox/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"dash":          DefaultDash,
	"date":          formatDate,
	"excerpt":       excerpt,
	"favoriteLabel": favoriteLabel,
}).ParseFS(templateFS, "templates/*.html"))

func render(name string, data any) templ.Component {
	return templ.FromGoHTML(pageTemplates.Lookup(name), data)
}

// Index lists every recipe and, for a logged-in user, their favorites.
func Index(recipes, favorites []models.Recipe, loggedIn bool) templ.Component {
	return render("index", struct {
		Recipes   []models.Recipe
		Favorites []models.Recipe
		LoggedIn  bool
	}{recipes, favorites, loggedIn})
}

// Login renders the sign-in form.
func Login(username string) templ.Component {
	return render("login", struct{ Username string }{username})
}

// Register renders the account creation form.
func Register(username string) templ.Component {
	return render("register", struct{ Username string }{username})
}

// RecipeForm is the data behind the create and edit forms.
type RecipeForm struct {
	Heading      string
	Action       string
	Submit       string
	Title        string
	Ingredients  string
	Instructions string
}

// NewRecipeForm returns an empty form posting to the create endpoint.
func NewRecipeForm() RecipeForm {
	return RecipeForm{Heading: "New recipe", Action: "/create-recipe", Submit: "Create recipe"}
}

// EditRecipeForm returns a form pre-filled with recipe posting to its edit endpoint.
func EditRecipeForm(recipe models.Recipe) RecipeForm {
	return RecipeForm{
		Heading:      "Edit recipe",
		Action:       fmt.Sprintf("/edit-recipe/%d", recipe.ID),
		Submit:       "Save changes",
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}
}

// Recipe renders a create or edit form.
func Recipe(form RecipeForm) templ.Component {
	return render("recipe_form", form)
}

// RecipeDetail renders a recipe with its comments and favorite controls.
func RecipeDetail(detail service.RecipeDetail, loggedIn bool) templ.Component {
	return render("recipe_detail", struct {
		service.RecipeDetail
		LoggedIn bool
	}{detail, loggedIn})
}

// Search renders the search form with query pre-filled.
func Search(query string) templ.Component {
	return render("search", struct{ Query string }{query})
}

// SearchResults renders the recipes matching query.
func SearchResults(query string, recipes []models.Recipe) templ.Component {
	return render("search_results", struct {
		Query   string
		Recipes []models.Recipe
	}{query, recipes})
}
