package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"recipebox/models"
)

const recipeOrder = "created_at desc, id desc"

type GormRecipes struct {
	db *gorm.DB
}

func NewRecipes(db *gorm.DB) *GormRecipes {
	return &GormRecipes{db: db}
}

func (r *GormRecipes) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").Order(recipeOrder).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *GormRecipes) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *GormRecipes) FindByID(ctx context.Context, id uint) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	if err := r.db.WithContext(ctx).Preload("Author").First(recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find recipe %d: %w", id, err)
	}
	return recipe, nil
}

func (r *GormRecipes) UpdateContent(ctx context.Context, id uint, title, ingredients, instructions string) error {
	// A map keeps empty strings; a struct update would skip them.
	updates := map[string]any{
		"title":        title,
		"ingredients":  ingredients,
		"instructions": instructions,
	}
	result := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRecipes) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of recipe %d: %w", id, err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites of recipe %d: %w", id, err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Recipe{})
		if result.Error != nil {
			return fmt.Errorf("delete recipe %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Search matches query as a literal, case-insensitive substring of the
// title, ingredients or instructions. Matching happens in Go because
// SQLite's LOWER and LIKE only fold ASCII.
func (r *GormRecipes) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").Order(recipeOrder).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	needle := foldCase(query)
	matches := recipes[:0]
	for _, recipe := range recipes {
		if strings.Contains(foldCase(recipe.Title), needle) ||
			strings.Contains(foldCase(recipe.Ingredients), needle) ||
			strings.Contains(foldCase(recipe.Instructions), needle) {
			matches = append(matches, recipe)
		}
	}
	return matches, nil
}

func foldCase(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}
