package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jewelcart/internal/domain"
)

const customerCtxKey = "customer"
const tokenCtxKey = "token"

// requireAuth resolves the bearer token and stores the customer on the
// request context. Missing or invalid tokens end the request with 401.
func requireAuth(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		customer, err := customers.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(customerCtxKey, customer)
		c.Set(tokenCtxKey, token)
		c.Next()
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerCtxKey)
	if !ok {
		return nil
	}
	customer, _ := v.(*domain.Customer)
	return customer
}

func currentToken(c *gin.Context) string {
	v, ok := c.Get(tokenCtxKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
