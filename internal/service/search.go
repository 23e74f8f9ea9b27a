package service

import (
	"context"

	"recipebox/models"
)

// Search returns recipes whose title, ingredients or instructions contain
// query, ignoring case. An empty query returns every recipe.
func (s *Recipes) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	return s.recipes.Search(ctx, query)
}
