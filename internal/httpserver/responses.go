package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelcart/internal/domain"
)

// lineResponse is the line shape shared by the cart, wishlist and
// video-cart endpoints.
type lineResponse struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	ProductOptionID *string `json:"product_option_id,omitempty"`
	Quantity        int     `json:"quantity"`
	UnitPriceCents  int64   `json:"unit_price_cents"`
	Name            string  `json:"name,omitempty"`
	Image           string  `json:"image,omitempty"`
	Slug            string  `json:"slug,omitempty"`
}

func toLineResponses(lines []domain.CartLine) []lineResponse {
	out := make([]lineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			ProductOptionID: l.OptionID,
			Quantity:        l.Quantity,
			UnitPriceCents:  l.UnitPriceCents,
			Name:            l.Name,
			Image:           l.ImageURL,
			Slug:            l.Slug,
		})
	}
	return out
}

// itemsPayload answers cart and wishlist reads: {"data":{"items":[...]}}.
func itemsPayload(lines []domain.CartLine) gin.H {
	return gin.H{"data": gin.H{"items": toLineResponses(lines)}}
}

// listPayload answers video-cart reads, which carry the line array directly
// under data: {"data":[...]}.
func listPayload(lines []domain.CartLine) gin.H {
	return gin.H{"data": toLineResponses(lines)}
}

func authPayload(customer *domain.Customer, token string) gin.H {
	return gin.H{"data": gin.H{"token": token, "customer": customer}}
}

// writeServiceError maps a service error to the response status. Not-found
// conditions get 404; everything else is treated as a bad request so the
// storefront can show the message.
func writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func writeInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
