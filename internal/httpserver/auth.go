package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "jewelcart/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func signupHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer, token, err := customers.Signup(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, authPayload(customer, token))
	}
}

func loginHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer, token, err := customers.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			writeInternalError(c)
			return
		}
		c.JSON(http.StatusOK, authPayload(customer, token))
	}
}

func logoutHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := customers.Logout(c.Request.Context(), currentToken(c)); err != nil {
			writeInternalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"ok": true}})
	}
}
