package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	applog "recipebox/internal/log"
	"recipebox/models"
)

// Demo account created by Seed.
const (
	DemoUsername = "admin"
	DemoPassword = "password"
	DemoRecipe   = "Chocolate Cake"
)

// Seed inserts the demo account and its sample recipe. It does nothing when
// any user already exists and reports whether rows were written.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	if db == nil {
		return false, fmt.Errorf("database handle is nil")
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		applog.Debug(ctx, "skipping demo seed, users already present", "users", users)
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash demo password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Username:     DemoUsername,
			PasswordHash: string(hashed),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}

		recipe := models.Recipe{
			Title:        DemoRecipe,
			Ingredients:  "1.water",
			Instructions: "1. Preheat the oven...\n2. In a mixing bowl...\n3. Bake for 30 minutes...",
			AuthorID:     admin.ID,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("create demo recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	applog.Info(ctx, "demo data seeded", "username", DemoUsername)
	return true, nil
}
