package catalog

import "github.com/merchkit/cross-sell-service/internal/domain"

// builtinProducts is the static fallback set used when no snapshot is
// available. Cross-sell edges point at ids within this set only.
func builtinProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod_1",
			Name:        "UltraBook Pro 14 Laptop",
			Category:    "electronics",
			Price:       1199.00,
			Description: "14-inch ultralight laptop with 16GB RAM and a 512GB SSD.",
			CrossSell:   []string{"prod_2", "prod_3"},
		},
		{
			ID:          "prod_2",
			Name:        "Silent Wireless Mouse",
			Category:    "accessories",
			Price:       24.99,
			Description: "Low-profile wireless mouse with silent switches and USB-C dongle.",
			CrossSell:   []string{"prod_3", "prod_4"},
		},
		{
			ID:          "prod_3",
			Name:        "Mechanical Keyboard TKL",
			Category:    "accessories",
			Price:       89.50,
			Description: "Tenkeyless mechanical keyboard with hot-swappable switches.",
			CrossSell:   []string{"prod_2", "prod_4"},
		},
		{
			ID:          "prod_4",
			Name:        "27-inch QHD Monitor",
			Category:    "electronics",
			Price:       329.00,
			Description: "27-inch QHD IPS monitor with 144Hz refresh rate.",
			CrossSell:   []string{"prod_2", "prod_3"},
		},
		{
			ID:          "prod_5",
			Name:        "Nova X Smartphone",
			Category:    "electronics",
			Price:       799.00,
			Description: "6.4-inch OLED smartphone with a triple camera system.",
			CrossSell:   []string{"prod_6", "prod_7"},
		},
		{
			ID:          "prod_6",
			Name:        "Shockproof Phone Case",
			Category:    "accessories",
			Price:       19.99,
			Description: "Drop-tested case with raised bezels and matte finish.",
			CrossSell:   []string{"prod_5"},
		},
		{
			ID:          "prod_7",
			Name:        "True Wireless Earbuds",
			Category:    "audio",
			Price:       129.00,
			Description: "Earbuds with active noise cancellation and wireless charging case.",
			CrossSell:   []string{"prod_5", "prod_8"},
		},
		{
			ID:          "prod_8",
			Name:        "Over-Ear Noise Cancelling Headphones",
			Category:    "audio",
			Price:       249.00,
			Description: "Studio-grade over-ear headphones with 30 hour battery life.",
			CrossSell:   []string{"prod_5", "prod_7"},
		},
		{
			ID:          "prod_9",
			Name:        "Apex DSLR Camera",
			Category:    "electronics",
			Price:       899.00,
			Description: "24MP DSLR camera body with dual card slots.",
			CrossSell:   []string{"prod_10", "prod_11"},
		},
		{
			ID:          "prod_10",
			Name:        "Carbon Travel Tripod",
			Category:    "accessories",
			Price:       149.00,
			Description: "Carbon fiber tripod folding down to 40cm.",
			CrossSell:   []string{"prod_9"},
		},
		{
			ID:          "prod_11",
			Name:        "128GB SDXC Card",
			Category:    "accessories",
			Price:       34.99,
			Description: "UHS-II SD card rated for 4K video capture.",
			CrossSell:   []string{"prod_9", "prod_10"},
		},
		{
			ID:          "prod_12",
			Name:        "Commuter Laptop Backpack",
			Category:    "bags",
			Price:       74.00,
			Description: "Water-resistant backpack with padded 15-inch laptop sleeve.",
			CrossSell:   []string{"prod_1"},
		},
	}
}
