package apiclient

import "jewelcart/internal/domain"

// wireLine is the line shape shared by the cart, wishlist and video-cart
// endpoints. id is the server-assigned line identity, distinct from the
// catalog product id.
type wireLine struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	ProductOptionID *string `json:"product_option_id,omitempty"`
	Quantity        int     `json:"quantity"`
	UnitPriceCents  int64   `json:"unit_price_cents"`
	Name            string  `json:"name,omitempty"`
	Image           string  `json:"image,omitempty"`
	Slug            string  `json:"slug,omitempty"`
}

// itemsEnvelope wraps cart and wishlist reads: {"data":{"items":[...]}}.
type itemsEnvelope struct {
	Data struct {
		Items []wireLine `json:"items"`
	} `json:"data"`
}

// listEnvelope wraps video-cart reads: {"data":[...]}.
type listEnvelope struct {
	Data []wireLine `json:"data"`
}

type authEnvelope struct {
	Data struct {
		Token    string          `json:"token"`
		Customer domain.Customer `json:"customer"`
	} `json:"data"`
}

type addLineRequest struct {
	ProductID       int64   `json:"product_id"`
	Quantity        int     `json:"quantity,omitempty"`
	ProductOptionID *string `json:"product_option_id,omitempty"`
}

type updateLineRequest struct {
	Quantity        int     `json:"quantity"`
	ProductOptionID *string `json:"product_option_id,omitempty"`
}

func toDomainLines(items []wireLine) []domain.Line {
	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{
			RemoteID:       it.ID,
			ProductID:      it.ProductID,
			OptionID:       derefOption(it.ProductOptionID),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Name:           it.Name,
			Image:          it.Image,
			Slug:           it.Slug,
		})
	}
	return lines
}

func toDomainEntries(items []wireLine) []domain.WishlistEntry {
	entries := make([]domain.WishlistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, domain.WishlistEntry{
			RemoteID:  it.ID,
			ProductID: it.ProductID,
			OptionID:  derefOption(it.ProductOptionID),
			Name:      it.Name,
			Image:     it.Image,
			Slug:      it.Slug,
		})
	}
	return entries
}

func derefOption(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
