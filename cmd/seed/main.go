// Command seed populates the database with demo accounts and listings for
// local development. It is idempotent per email: existing accounts are
// skipped.
package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	authadapters "shop_backend/internal/feature/auth/adapters"
	authentity "shop_backend/internal/feature/auth/domain/entity"
	catalogadapters "shop_backend/internal/feature/catalog/adapters"
	catalogentity "shop_backend/internal/feature/catalog/domain/entity"
	infradb "shop_backend/internal/platform/db"
)

type seedUser struct {
	user     authentity.User
	password string
	products []catalogentity.Product
}

func main() {
	db := infradb.OpenDB()
	ctx := context.Background()

	seeds := []seedUser{
		{
			user: authentity.User{
				Name: "Admin", Email: "admin@example.com", Username: "admin",
				Role: authentity.RoleAdmin, IsVerified: true,
			},
			password: "Admin1234",
		},
		{
			user: authentity.User{
				Name: "Alice Seller", Email: "alice@example.com", Username: "alice",
				Role: authentity.RoleUser, IsVerified: true,
			},
			password: "Alice1234",
			products: []catalogentity.Product{
				{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches.",
					Price: 89.99, Category: catalogentity.CategoryElectronics, Stock: 12,
					ImageURL: catalogentity.DefaultImageURL, IsActive: true},
				{Name: "Go Programming Book", Description: "Well-thumbed copy, good condition.",
					Price: 25.00, Category: catalogentity.CategoryBooks, Stock: 3,
					ImageURL: catalogentity.DefaultImageURL, IsActive: true},
			},
		},
		{
			user: authentity.User{
				Name: "Bob Buyer", Email: "bob@example.com", Username: "bob",
				Role: authentity.RoleUser, IsVerified: true,
			},
			password: "Bobby1234",
			products: []catalogentity.Product{
				{Name: "Trail Running Shoes", Description: "Size 42, worn twice.",
					Price: 55.50, Category: catalogentity.CategorySports, Stock: 1,
					ImageURL: catalogentity.DefaultImageURL, IsActive: true},
			},
		},
	}

	users := authadapters.NewUserMySQL(db)
	products := catalogadapters.NewProductMySQL(db)

	for _, s := range seeds {
		if _, err := users.FindByEmail(ctx, s.user.Email); err == nil {
			log.Printf("seed: %s already exists, skipping", s.user.Email)
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("seed: hash password: %v", err)
		}
		s.user.Password = string(hashed)
		if err := users.Create(ctx, &s.user); err != nil {
			log.Fatalf("seed: create user %s: %v", s.user.Email, err)
		}
		for i := range s.products {
			s.products[i].OwnerID = s.user.ID
			if err := products.Create(ctx, &s.products[i]); err != nil {
				log.Fatalf("seed: create product %q: %v", s.products[i].Name, err)
			}
		}
		log.Printf("seed: created %s with %d products", s.user.Email, len(s.products))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
