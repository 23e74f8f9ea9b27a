// Package repository holds the data-access contracts for each entity and
// their gorm-backed implementations.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebox/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type Recipes interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id uint) (*models.Recipe, error)
	UpdateContent(ctx context.Context, id uint, title, ingredients, instructions string) error
	// Delete removes the recipe together with its comments and favorites.
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

type Comments interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListForRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error)
}

type Favorites interface {
	// Add is a no-op when the pair already exists.
	Add(ctx context.Context, userID, recipeID uint) error
	// Remove is a no-op when the pair does not exist.
	Remove(ctx context.Context, userID, recipeID uint) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	CountForRecipe(ctx context.Context, recipeID uint) (int64, error)
	ListRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
}

// Store bundles the repositories sharing one database handle.
type Store struct {
	Users     Users
	Recipes   Recipes
	Comments  Comments
	Favorites Favorites
}

// New builds a Store backed by db.
func New(db *gorm.DB) Store {
	return Store{
		Users:     NewUsers(db),
		Recipes:   NewRecipes(db),
		Comments:  NewComments(db),
		Favorites: NewFavorites(db),
	}
}
