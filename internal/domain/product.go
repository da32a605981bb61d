package domain

// Product is one catalog entry. The catalog is loaded wholesale at startup
// and never mutated afterwards, so products are safe to share across requests.
type Product struct {
	ID          string   `json:"product_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	CrossSell   []string `json:"cross_sell,omitempty"`
}
