package store

import "github.com/dmitrijs2005/shopfront/internal/client/models"

const (
	DemoEmail    = "demo@shopfront.local"
	DemoPassword = "demo1234"
)

var demoProducts = []models.Product{
	{Name: "Kopi Toraja 250g", Description: "Single origin arabica", Price: 85000, Stock: 40, Category: "coffee"},
	{Name: "Teh Melati", Description: "Jasmine tea, 25 bags", Price: 18500, Stock: 120, Category: "tea"},
	{Name: "Batik Tote Bag", Description: "Hand-stamped cotton", Price: 150000, Stock: 12, Category: "apparel"},
	{Name: "Sambal Matah", Description: "Balinese shallot relish", Price: 32000, Stock: 0, Category: "pantry"},
	{Name: "Rattan Coaster Set", Description: "Set of 6", Price: 67500, Stock: 25, Category: "home"},
}

// Seed loads the demo catalog and the demo user. hash is the bcrypt hash of
// DemoPassword.
func Seed(s *Store, hash string) error {
	for _, p := range demoProducts {
		if _, err := s.CreateProduct(p); err != nil {
			return err
		}
	}
	_, err := s.CreateUser("Demo Shopper", DemoEmail, hash)
	return err
}
