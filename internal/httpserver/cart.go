package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cartsvc "jewelcart/internal/service/cart"
)

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func listCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := currentCustomer(c)
		lines, err := carts.List(c.Request.Context(), customer.ID)
		if err != nil {
			writeInternalError(c)
			return
		}
		c.JSON(http.StatusOK, itemsPayload(lines))
	}
}

func addCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartsvc.AddInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer := currentCustomer(c)
		if err := carts.Add(c.Request.Context(), customer.ID, req); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"ok": true}})
	}
}

func updateCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, ok := pathID(c, "lineID")
		if !ok {
			return
		}
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer := currentCustomer(c)
		if err := carts.UpdateQuantity(c.Request.Context(), customer.ID, lineID, req.Quantity); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}

func removeCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, ok := pathID(c, "lineID")
		if !ok {
			return
		}

		customer := currentCustomer(c)
		if err := carts.Remove(c.Request.Context(), customer.ID, lineID); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
