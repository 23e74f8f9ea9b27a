package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/db"
	applog "recipebox/internal/log"
	"recipebox/internal/repository"
	"recipebox/internal/service"
	"recipebox/models"
)

const ownerEnv = "RECIPEBOX_IMPORT_OWNER"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_recipes <recipes.csv|recipe.pdf|recipe.txt>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("source path must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate source: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.Database.UseMock {
		return fmt.Errorf("DATABASE_URL must point at a persistent database")
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	inputs, err := readRecipes(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	owner, err := resolveImportOwner(ctx, database)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}

	imported, skipped, err := importRecipes(ctx, service.NewRecipes(repository.New(database)), owner, inputs)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d recipes from %s for %s (%d already present)\n", imported, filepath.Base(path), owner.Username, skipped)
	return nil
}

// resolveImportOwner picks the user named by RECIPEBOX_IMPORT_OWNER, or the
// oldest account when the variable is unset.
func resolveImportOwner(ctx context.Context, database *gorm.DB) (service.Identity, error) {
	if database == nil {
		return service.Identity{}, fmt.Errorf("database handle is nil")
	}

	users := repository.NewUsers(database)
	if username := strings.TrimSpace(os.Getenv(ownerEnv)); username != "" {
		user, err := users.FindByUsername(ctx, username)
		if err != nil {
			return service.Identity{}, fmt.Errorf("find owner %q: %w", username, err)
		}
		return service.Identity{UserID: user.ID, Username: user.Username}, nil
	}

	var user models.User
	if err := database.WithContext(ctx).Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.Identity{}, fmt.Errorf("no users registered; create an account or set %s", ownerEnv)
		}
		return service.Identity{}, fmt.Errorf("find default owner: %w", err)
	}
	return service.Identity{UserID: user.ID, Username: user.Username}, nil
}

// importRecipes creates every input the owner does not already have under
// the same title.
func importRecipes(ctx context.Context, recipes *service.Recipes, owner service.Identity, inputs []service.RecipeInput) (int, int, error) {
	existing, err := recipes.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list recipes: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, recipe := range existing {
		if recipe.AuthorID == owner.UserID {
			seen[strings.ToLower(recipe.Title)] = true
		}
	}

	imported, skipped := 0, 0
	for idx, input := range inputs {
		key := strings.ToLower(input.Title)
		if seen[key] {
			applog.Debug(ctx, "skipping existing recipe", "title", input.Title)
			skipped++
			continue
		}
		if _, err := recipes.Create(ctx, owner, input); err != nil {
			return imported, skipped, fmt.Errorf("recipe %d (%s): %w", idx+1, input.Title, err)
		}
		seen[key] = true
		imported++
	}
	return imported, skipped, nil
}
