package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	videocartsvc "jewelcart/internal/service/videocart"
)

func listVideoCartHandler(videoCarts VideoCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := currentCustomer(c)
		lines, err := videoCarts.List(c.Request.Context(), customer.ID)
		if err != nil {
			writeInternalError(c)
			return
		}
		c.JSON(http.StatusOK, listPayload(lines))
	}
}

func addVideoCartHandler(videoCarts VideoCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req videocartsvc.AddInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer := currentCustomer(c)
		if err := videoCarts.Add(c.Request.Context(), customer.ID, req); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"ok": true}})
	}
}

func updateVideoCartHandler(videoCarts VideoCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, ok := pathID(c, "lineID")
		if !ok {
			return
		}
		var req videocartsvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer := currentCustomer(c)
		if err := videoCarts.Update(c.Request.Context(), customer.ID, lineID, req); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}

func removeVideoCartHandler(videoCarts VideoCartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, ok := pathID(c, "lineID")
		if !ok {
			return
		}

		customer := currentCustomer(c)
		if err := videoCarts.Remove(c.Request.Context(), customer.ID, lineID); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}
