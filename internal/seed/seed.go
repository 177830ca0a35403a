package seed

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/coder-dkr/doomswear/configs"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const seedPassword = "password123"

var testUsers = []struct {
	Name  string
	Email string
}{
	{"Test Shopper 1", "shopper1@test.com"},
	{"Test Shopper 2", "shopper2@test.com"},
	{"Test Shopper 3", "shopper3@test.com"},
}

// Run seeds the storefront product and demo shoppers. Idempotent:
// skipped if the product already exists.
func Run(st *store.Store) {
	ctx := context.Background()

	products, err := st.ListProducts(ctx, "")
	if err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if len(products) > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}
	hashed := string(hash)

	err = st.Atomically(ctx, func(tx *store.Store) error {
		product := hoodie()
		if err := tx.CreateProduct(ctx, &product); err != nil {
			return err
		}

		opening := decimal.NewFromFloat(configs.AppConfig.Wallet.OpeningBalance)
		for _, u := range testUsers {
			user := models.User{Name: u.Name, Email: u.Email, Password: hashed}
			if err := tx.CreateUser(ctx, &user, opening); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded catalog and 3 test shoppers", zap.String("password", seedPassword))
}

func hoodie() models.Product {
	return models.Product{
		Name:          "Friends Vector Designing Hoodie",
		Description:   `Bring the spirit of camaraderie and laughter into your wardrobe with the "Friends Vector Designing Hoodie." This cozy and stylish hoodie is inspired by the timeless TV show "Friends" and features a delightful vector design showcasing the beloved characters.`,
		Price:         decimal.NewFromInt(799),
		OriginalPrice: decimal.NewFromInt(1200),
		Images: []string{
			"https://images.pexels.com/photos/6311392/pexels-photo-6311392.jpeg",
			"https://images.pexels.com/photos/6311389/pexels-photo-6311389.jpeg",
			"https://images.pexels.com/photos/6311394/pexels-photo-6311394.jpeg",
		},
		Highlights: []string{
			`Delightful vector design featuring the iconic characters of "Friends"`,
			"High-quality and soft fabric for maximum comfort",
			"Regular fit for a classic and versatile style",
			`Perfect for casual outings, cozy nights, and expressing your love for "Friends"`,
			"Celebrate the timeless camaraderie of Ross, Rachel, Chandler, Monica, Joey, and Phoebe",
		},
		Colors: []models.Color{
			{Name: "Black", Value: "#000000", ColorClass: "bg-black"},
			{Name: "Maroon", Value: "#800000", ColorClass: "bg-red-900"},
			{Name: "Navy", Value: "#000080", ColorClass: "bg-blue-900"},
			{Name: "Green", Value: "#006400", ColorClass: "bg-green-800"},
			{Name: "Purple", Value: "#800080", ColorClass: "bg-purple-700"},
		},
		Sizes:     []string{"S", "M", "L", "XL", "XXL"},
		Tags:      []string{"hoodie", "Friends", "vector design", "camaraderie", "sitcom", "cozy"},
		Inventory: 50,
	}
}
