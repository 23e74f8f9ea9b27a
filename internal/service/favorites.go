package service

import (
	"context"

	applog "recipebox/internal/log"
	"recipebox/models"
)

// AddFavorite marks the recipe as a favorite of actor. Repeating it is a no-op.
func (s *Recipes) AddFavorite(ctx context.Context, actor Identity, recipeID uint) error {
	if err := s.checkFavoritePair(ctx, actor, recipeID); err != nil {
		return err
	}
	if err := s.favorites.Add(ctx, actor.UserID, recipeID); err != nil {
		return err
	}
	applog.Debug(ctx, "favorite added", "userID", actor.UserID, "recipeID", recipeID)
	return nil
}

// RemoveFavorite unmarks the recipe. Removing a favorite that is not present is a no-op.
func (s *Recipes) RemoveFavorite(ctx context.Context, actor Identity, recipeID uint) error {
	if err := s.checkFavoritePair(ctx, actor, recipeID); err != nil {
		return err
	}
	if err := s.favorites.Remove(ctx, actor.UserID, recipeID); err != nil {
		return err
	}
	applog.Debug(ctx, "favorite removed", "userID", actor.UserID, "recipeID", recipeID)
	return nil
}

// Favorites lists the recipes actor marked as favorites.
func (s *Recipes) Favorites(ctx context.Context, actor Identity) ([]models.Recipe, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	return s.favorites.ListRecipes(ctx, actor.UserID)
}

func (s *Recipes) checkFavoritePair(ctx context.Context, actor Identity, recipeID uint) error {
	if !actor.Authenticated() {
		return ErrAuthRequired
	}
	if _, err := s.users.FindByID(ctx, actor.UserID); err != nil {
		return translate(err)
	}
	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		return translate(err)
	}
	return nil
}
