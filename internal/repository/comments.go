package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/models"
)

type GormComments struct {
	db *gorm.DB
}

func NewComments(db *gorm.DB) *GormComments {
	return &GormComments{db: db}
}

func (r *GormComments) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment on recipe %d: %w", comment.RecipeID, err)
	}
	return nil
}

// ListForRecipe returns the recipe's comments oldest first with their authors loaded.
func (r *GormComments) ListForRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of recipe %d: %w", recipeID, err)
	}
	return comments, nil
}
