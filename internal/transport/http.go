package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vasiliy-maslov/bazar-backend/internal/auth"
	"github.com/vasiliy-maslov/bazar-backend/internal/cart"
	"github.com/vasiliy-maslov/bazar-backend/internal/comment"
	"github.com/vasiliy-maslov/bazar-backend/internal/config"
	"github.com/vasiliy-maslov/bazar-backend/internal/gateway"
	"github.com/vasiliy-maslov/bazar-backend/internal/handler"
	"github.com/vasiliy-maslov/bazar-backend/internal/order"
	"github.com/vasiliy-maslov/bazar-backend/internal/product"
	"github.com/vasiliy-maslov/bazar-backend/internal/user"
)

// NewRouter wires repositories, services and handlers onto a chi router.
func NewRouter(pool *pgxpool.Pool, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.App.AllowedOrigin},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	productSvc := product.NewService(product.NewRepository(pool))
	userSvc := user.NewService(user.NewRepository(pool))
	commentSvc := comment.NewService(comment.NewRepository(pool))
	cartSvc := cart.NewService(cart.NewRepository(pool))

	gw := gateway.NewClient(cfg.Gateway.StoreID, cfg.Gateway.StorePassword, cfg.Gateway.Live)
	orderSvc := order.NewService(order.NewRepository(pool), productSvc, gw, cfg.Gateway.Currency, cfg.App.PublicBaseURL)

	productHandler := handler.NewProductHandler(productSvc)
	userHandler := handler.NewUserHandler(userSvc, issuer)
	commentHandler := handler.NewCommentHandler(commentSvc)
	cartHandler := handler.NewCartHandler(cartSvc)
	orderHandler := handler.NewOrderHandler(orderSvc, cfg.App.ClientBaseURL)

	// Core order/payment surface.
	r.Post("/order", orderHandler.Checkout)
	r.Get("/ordered", orderHandler.GetOrdered)
	r.Post("/payment/success/{transactionId}", orderHandler.PaymentSuccess)
	r.Post("/payment/fail/{transactionId}", orderHandler.PaymentFail)

	// Catalog.
	r.Post("/createProduct", productHandler.CreateProduct)
	r.Get("/api/products", productHandler.ListProducts)
	r.Get("/api/product/{id}", productHandler.GetProductByID)
	r.Get("/api/buy/{id}", productHandler.Buy)
	r.Get("/api/categories", productHandler.ListCategories)
	r.Get("/api/search/categories", productHandler.SearchByCategory)

	// Accounts.
	r.Post("/api/register", userHandler.Register)
	r.Post("/api/login", userHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(issuer.Middleware)
		r.Get("/api/user", userHandler.Profile)
		r.Get("/api/userId", userHandler.GetUserByID)
	})

	// Comments.
	r.Post("/api/comments", commentHandler.AddComment)
	r.Get("/api/comments/{productId}", commentHandler.ListComments)
	r.Delete("/api/comments/{id}", commentHandler.DeleteComment)

	// Cart (authenticated).
	r.Group(func(r chi.Router) {
		r.Use(issuer.Middleware)
		r.Post("/api/cart", cartHandler.AddItem)
		r.Get("/api/cart", cartHandler.ListItems)
		r.Delete("/api/cart/{itemId}", cartHandler.RemoveItem)
	})

	return r
}
