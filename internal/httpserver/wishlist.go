package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wishlistsvc "jewelcart/internal/service/wishlist"
)

func listWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := currentCustomer(c)
		entries, err := wishlists.List(c.Request.Context(), customer.ID)
		if err != nil {
			writeInternalError(c)
			return
		}
		c.JSON(http.StatusOK, itemsPayload(entries))
	}
}

func addWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistsvc.AddInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer := currentCustomer(c)
		if err := wishlists.Add(c.Request.Context(), customer.ID, req); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"ok": true}})
	}
}

func removeWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryID, ok := pathID(c, "entryID")
		if !ok {
			return
		}

		customer := currentCustomer(c)
		if err := wishlists.Remove(c.Request.Context(), customer.ID, entryID); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}
