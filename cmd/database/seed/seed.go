package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"tmm-backend/entities"
	"tmm-backend/pkg/menu"
	"tmm-backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type (
	File struct {
		Admin *Admin     `yaml:"admin"`
		Menu  []MenuItem `yaml:"menu"`
	}

	Admin struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	}

	MenuItem struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Category    string `yaml:"category"`
		Tier        string `yaml:"tier"`
		Price       string `yaml:"price"`
		Available   *bool  `yaml:"available"`
	}
)

// Load reads a seed file, or the built-in catalog when path is empty.
func Load(path string) (*File, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, item := range f.Menu {
		if item.Name == "" {
			return nil, fmt.Errorf("seed menu[%d]: name is required", i)
		}
		if !entities.ValidCategory(item.Category) || !entities.ValidTier(item.Tier) {
			return nil, fmt.Errorf("seed menu[%d] %q: bad category %q or tier %q", i, item.Name, item.Category, item.Tier)
		}
		if _, err := decimal.NewFromString(item.Price); err != nil {
			return nil, fmt.Errorf("seed menu[%d] %q: bad price %q", i, item.Name, item.Price)
		}
	}
	return &f, nil
}

// Seed inserts missing menu items by name and the admin account by email.
// ADMIN_PASSWORD in the environment overrides the file password.
func Seed(ctx context.Context, db *gorm.DB, userService user.UserService, f *File) error {
	repo := menu.NewMenuRepository(db)

	created := 0
	for _, item := range f.Menu {
		_, err := repo.GetMenuItemByName(ctx, item.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		available := true
		if item.Available != nil {
			available = *item.Available
		}
		if err := repo.CreateMenuItem(ctx, &entities.MenuItem{
			ID:          uuid.New(),
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			Tier:        item.Tier,
			Price:       decimal.RequireFromString(item.Price),
			Available:   available,
		}); err != nil {
			return fmt.Errorf("seed %q: %w", item.Name, err)
		}
		created++
	}
	log.Infow("menu seeded", "created", created, "total", len(f.Menu))

	if f.Admin == nil {
		return nil
	}
	password := f.Admin.Password
	if env := os.Getenv("ADMIN_PASSWORD"); env != "" {
		password = env
	}
	if _, err := userService.EnsureAdmin(ctx, f.Admin.Email, f.Admin.Name, password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
