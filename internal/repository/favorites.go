package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebox/models"
)

type GormFavorites struct {
	db *gorm.DB
}

func NewFavorites(db *gorm.DB) *GormFavorites {
	return &GormFavorites{db: db}
}

func (r *GormFavorites) Add(ctx context.Context, userID, recipeID uint) error {
	favorite := models.Favorite{UserID: userID, RecipeID: recipeID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
	if err != nil {
		return fmt.Errorf("add favorite (%d, %d): %w", userID, recipeID, err)
	}
	return nil
}

func (r *GormFavorites) Remove(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite (%d, %d): %w", userID, recipeID, err)
	}
	return nil
}

func (r *GormFavorites) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite (%d, %d): %w", userID, recipeID, err)
	}
	return count > 0, nil
}

func (r *GormFavorites) CountForRecipe(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("recipe_id = ?", recipeID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count favorites of recipe %d: %w", recipeID, err)
	}
	return count, nil
}

func (r *GormFavorites) ListRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("recipes.created_at desc, recipes.id desc").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}
	return recipes, nil
}
