package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	applog "recipebox/internal/log"
	"recipebox/internal/repository"
	"recipebox/models"
)

// RecipeInput carries the user-editable fields of a recipe.
type RecipeInput struct {
	Title        string
	Ingredients  string
	Instructions string
}

func (in RecipeInput) validate() error {
	if utf8.RuneCountInString(in.Title) > models.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, models.MaxTitleLength)
	}
	return nil
}

// RecipeDetail is a recipe together with what its page shows around it.
type RecipeDetail struct {
	Recipe        models.Recipe
	Comments      []models.Comment
	FavoriteCount int64
	Favorited     bool
	CanEdit       bool
}

// Recipes implements recipe, comment, favorite and search operations.
type Recipes struct {
	users     repository.Users
	recipes   repository.Recipes
	comments  repository.Comments
	favorites repository.Favorites
	now       func() time.Time
}

func NewRecipes(store repository.Store) *Recipes {
	return &Recipes{
		users:     store.Users,
		recipes:   store.Recipes,
		comments:  store.Comments,
		favorites: store.Favorites,
		now:       time.Now,
	}
}

// List returns every recipe, newest first.
func (s *Recipes) List(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.List(ctx)
}

// Create stores a recipe authored by actor.
func (s *Recipes) Create(ctx context.Context, actor Identity, input RecipeInput) (*models.Recipe, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        input.Title,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		AuthorID:     actor.UserID,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	applog.Info(ctx, "recipe created", "recipeID", recipe.ID, "authorID", actor.UserID)
	return recipe, nil
}

// View returns a recipe with its author loaded.
func (s *Recipes) View(ctx context.Context, id uint) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return recipe, nil
}

// Detail returns a recipe with its comments and favorite state as seen by viewer.
func (s *Recipes) Detail(ctx context.Context, viewer Identity, id uint) (*RecipeDetail, error) {
	recipe, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.favorites.CountForRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	favorited := false
	if viewer.Authenticated() {
		favorited, err = s.favorites.Exists(ctx, viewer.UserID, id)
		if err != nil {
			return nil, err
		}
	}

	return &RecipeDetail{
		Recipe:        *recipe,
		Comments:      comments,
		FavoriteCount: count,
		Favorited:     favorited,
		CanEdit:       recipe.AuthoredBy(viewer.UserID),
	}, nil
}

// Edit overwrites the recipe's text fields. Only the author may edit.
func (s *Recipes) Edit(ctx context.Context, actor Identity, id uint, input RecipeInput) (*models.Recipe, error) {
	recipe, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := s.recipes.UpdateContent(ctx, id, input.Title, input.Ingredients, input.Instructions); err != nil {
		return nil, translate(err)
	}

	recipe.Title = input.Title
	recipe.Ingredients = input.Ingredients
	recipe.Instructions = input.Instructions

	applog.Info(ctx, "recipe updated", "recipeID", id, "authorID", actor.UserID)
	return recipe, nil
}

// Delete removes the recipe with its comments and favorites. Only the author may delete.
func (s *Recipes) Delete(ctx context.Context, actor Identity, id uint) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return translate(err)
	}

	applog.Info(ctx, "recipe deleted", "recipeID", id, "authorID", actor.UserID)
	return nil
}

func (s *Recipes) authorize(ctx context.Context, actor Identity, id uint) (*models.Recipe, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	recipe, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.AuthoredBy(actor.UserID) {
		applog.Debug(ctx, "recipe change denied", "recipeID", id, "authorID", recipe.AuthorID, "actorID", actor.UserID)
		return nil, ErrForbidden
	}
	return recipe, nil
}
