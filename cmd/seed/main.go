// cmd/seed/main.go — seeds the default variant catalog and demo accounts.
// Usage: go run ./cmd/seed
//
// Idempotent: variants are only inserted into an empty catalog, users only
// into an empty users table.
package main

import (
	"context"

	"prodtrack/internal/config"
	"prodtrack/internal/infra"
	"prodtrack/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultVariants = []string{
	"1L milk",
	"1L coconut water",
	"1kg nut butter",
	"2.5L nut butter",
	"250g nut butter",
	"Luxury nuts",
	"1kg roasted nuts",
	"1kg oats",
	"32g squeeze packs",
	"1kg Peanut butter",
	"2.5L peanut butter",
	"250g peanut butter",
	"500g cultured product",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	if err := seedVariants(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed variants")
	}
	if err := seedUsers(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed users")
	}
}

func seedVariants(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Variant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("variants", count).Msg("variant catalog already seeded")
		return nil
	}
	for i, name := range defaultVariants {
		v := model.Variant{Name: name, DisplayOrder: i}
		if err := db.WithContext(ctx).Create(&v).Error; err != nil {
			return err
		}
	}
	log.Info().Int("variants", len(defaultVariants)).Msg("seeded default variant catalog")
	return nil
}

func seedUsers(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("users", count).Msg("users already seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123"), 12)
	if err != nil {
		return err
	}
	users := []model.User{
		{Username: "admin", PasswordHash: string(hash), Role: model.RoleAdmin, FirstName: "Admin"},
		{Username: "johndoe", PasswordHash: string(hash), Role: model.RoleProductionManager, FirstName: "John", LastName: "Doe"},
	}
	for _, u := range users {
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("seeded user")
	}
	return nil
}
