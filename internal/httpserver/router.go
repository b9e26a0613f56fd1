package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelcart/internal/domain"
	cartsvc "jewelcart/internal/service/cart"
	customersvc "jewelcart/internal/service/customer"
	videocartsvc "jewelcart/internal/service/videocart"
	wishlistsvc "jewelcart/internal/service/wishlist"
)

// CartService is what the cart handlers need from the cart service.
type CartService interface {
	List(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, customerID int64, in cartsvc.AddInput) error
	UpdateQuantity(ctx context.Context, customerID, lineID int64, quantity int) error
	Remove(ctx context.Context, customerID, lineID int64) error
}

// WishlistService is what the wishlist handlers need.
type WishlistService interface {
	List(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, customerID int64, in wishlistsvc.AddInput) error
	Remove(ctx context.Context, customerID, entryID int64) error
}

// VideoCartService is what the video-consultation cart handlers need.
type VideoCartService interface {
	List(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, customerID int64, in videocartsvc.AddInput) error
	Update(ctx context.Context, customerID, lineID int64, in videocartsvc.UpdateInput) error
	Remove(ctx context.Context, customerID, lineID int64) error
}

// CustomerService handles signup, login and bearer-token resolution.
type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, string, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, error)
	Authenticate(ctx context.Context, token string) (*domain.Customer, error)
	Logout(ctx context.Context, token string) error
}

// Deps carries the services the router depends on.
type Deps struct {
	CartSvc      CartService
	WishlistSvc  WishlistService
	VideoCartSvc VideoCartService
	CustomerSvc  CustomerService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CartSvc == nil || deps.WishlistSvc == nil || deps.VideoCartSvc == nil || deps.CustomerSvc == nil {
		return nil, errors.New("httpserver: all services must be configured")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", signupHandler(deps.CustomerSvc))
	auth.POST("/login", loginHandler(deps.CustomerSvc))
	auth.POST("/logout", requireAuth(deps.CustomerSvc), logoutHandler(deps.CustomerSvc))

	cart := api.Group("/cart", requireAuth(deps.CustomerSvc))
	cart.GET("", listCartHandler(deps.CartSvc))
	cart.POST("", addCartHandler(deps.CartSvc))
	cart.PUT("/:lineID", updateCartHandler(deps.CartSvc))
	cart.DELETE("/:lineID", removeCartHandler(deps.CartSvc))

	wishlist := api.Group("/wishlist", requireAuth(deps.CustomerSvc))
	wishlist.GET("", listWishlistHandler(deps.WishlistSvc))
	wishlist.POST("", addWishlistHandler(deps.WishlistSvc))
	wishlist.DELETE("/:entryID", removeWishlistHandler(deps.WishlistSvc))

	videoCart := api.Group("/video-consultation/video-cart", requireAuth(deps.CustomerSvc))
	videoCart.GET("", listVideoCartHandler(deps.VideoCartSvc))
	videoCart.POST("", addVideoCartHandler(deps.VideoCartSvc))
	videoCart.PUT("/:lineID", updateVideoCartHandler(deps.VideoCartSvc))
	videoCart.DELETE("/:lineID", removeVideoCartHandler(deps.VideoCartSvc))

	return router, nil
}
