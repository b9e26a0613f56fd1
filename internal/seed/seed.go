package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type optionSeed struct {
	Label      string
	PriceCents int64
}

type productSeed struct {
	Slug        string
	Name        string
	Description string
	ImageURL    string
	PriceCents  int64
	Category    string
	Gemstone    string
	Options     []optionSeed
}

// Apply inserts basic catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Slug:        "solitaire-diamond-ring",
			Name:        "Solitaire Diamond Ring",
			Description: "Classic single-stone ring in 14k gold",
			ImageURL:    "/images/solitaire-diamond-ring.jpg",
			PriceCents:  129900,
			Category:    "rings",
			Gemstone:    "diamond",
			Options: []optionSeed{
				{Label: "Size 6 / Yellow Gold", PriceCents: 129900},
				{Label: "Size 6 / White Gold", PriceCents: 134900},
				{Label: "Size 7 / Yellow Gold", PriceCents: 129900},
			},
		},
		{
			Slug:        "emerald-pendant-necklace",
			Name:        "Emerald Pendant Necklace",
			Description: "Oval emerald pendant on an 18-inch chain",
			ImageURL:    "/images/emerald-pendant-necklace.jpg",
			PriceCents:  89900,
			Category:    "necklaces",
			Gemstone:    "emerald",
			Options: []optionSeed{
				{Label: "16 inch chain", PriceCents: 87900},
				{Label: "18 inch chain", PriceCents: 89900},
			},
		},
		{
			Slug:        "pearl-stud-earrings",
			Name:        "Pearl Stud Earrings",
			Description: "Freshwater pearl studs with silver posts",
			ImageURL:    "/images/pearl-stud-earrings.jpg",
			PriceCents:  24900,
			Category:    "earrings",
			Gemstone:    "pearl",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (slug, name, description, image_url, price_cents, category, gemstone)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    gemstone = EXCLUDED.gemstone
RETURNING id
`
	var productID int64
	if err := pool.QueryRow(ctx, q, p.Slug, p.Name, p.Description, p.ImageURL, p.PriceCents, p.Category, p.Gemstone).Scan(&productID); err != nil {
		return err
	}

	for _, o := range p.Options {
		const oq = `
INSERT INTO product_options (product_id, label, price_cents)
VALUES ($1, $2, $3)
ON CONFLICT (product_id, label) DO UPDATE SET price_cents = EXCLUDED.price_cents
`
		if _, err := pool.Exec(ctx, oq, productID, o.Label, o.PriceCents); err != nil {
			return fmt.Errorf("option %q: %w", o.Label, err)
		}
	}

	return nil
}
