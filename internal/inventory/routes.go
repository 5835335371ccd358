package inventory

import (
	"context"
	"time"

	"inventory-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the product API on r. Every store call made by the
// handlers is bounded by timeout.
func RegisterRoutes(r fiber.Router, s store.ProductStore, timeout time.Duration) {
	product := r.Group("/product", StoreTimeout(timeout))

	product.Get("/get", ListProductsHandler(s))
	product.Post("/create", CreateProductHandler(s))
	product.Put("/update/:id", UpdateProductHandler(s))
	product.Delete("/delete/:id", DeleteProductHandler(s))
}

// StoreTimeout puts a deadline on the request's user context.
func StoreTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
