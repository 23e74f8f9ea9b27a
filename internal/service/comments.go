package service

import (
	"context"

	applog "recipebox/internal/log"
	"recipebox/models"
)

// AddComment attaches text, as written, to the recipe on behalf of actor.
func (s *Recipes) AddComment(ctx context.Context, actor Identity, recipeID uint, text string) (*models.Comment, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		return nil, translate(err)
	}

	comment := &models.Comment{
		Text:      text,
		UserID:    actor.UserID,
		RecipeID:  recipeID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "comment added", "commentID", comment.ID, "recipeID", recipeID, "userID", actor.UserID)
	return comment, nil
}
