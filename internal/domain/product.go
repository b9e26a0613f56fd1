package domain

import "time"

// Product is a catalog item. Jewelry pieces often come in variants (ring
// size, metal, gemstone grade) modeled as ProductOptions; the base price
// applies when no option is selected.
type Product struct {
	ID          int64           `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	PriceCents  int64           `json:"priceCents"`
	Category    string          `json:"category,omitempty"`
	Gemstone    string          `json:"gemstone,omitempty"`
	Options     []ProductOption `json:"options,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductOption is a selectable variant of a product.
type ProductOption struct {
	ID         string `json:"id"`
	ProductID  int64  `json:"productId"`
	Label      string `json:"label"`
	PriceCents int64  `json:"priceCents"`
}

// CartLine is a server-side line row shared by the cart, video-cart and
// wishlist tables (the wishlist ignores Quantity). Display fields are
// denormalized from the product at read time.
type CartLine struct {
	ID             int64     `json:"id"`
	CustomerID     int64     `json:"-"`
	ProductID      int64     `json:"productId"`
	OptionID       *string   `json:"optionId,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Name           string    `json:"name,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Slug           string    `json:"slug,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
