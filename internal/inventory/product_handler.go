package inventory

import (
	"errors"
	"fmt"
	"strconv"

	"inventory-backend/internal/models"
	"inventory-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type DeleteProductResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors"`
}

// GET /product/get
func ListProductsHandler(s store.ProductStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := s.List(c.UserContext())
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}
		return c.JSON(products)
	}
}

// POST /product/create
func CreateProductHandler(s store.ProductStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseProductEnvelope(c)
		if err != nil {
			return err
		}
		if errs := in.Validate(); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
				Message: "Invalid product",
				Errors:  errs,
			})
		}

		// productid 0 kalırsa store atanan id ile doldurur
		rec, err := s.Create(c.UserContext(), in.ToProduct(0))
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// PUT /product/update/:id
func UpdateProductHandler(s store.ProductStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := productIDParam(c)
		if err != nil {
			return err
		}

		in, err := parseProductEnvelope(c)
		if err != nil {
			return err
		}
		if errs := in.Validate(); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
				Message: "Invalid product",
				Errors:  errs,
			})
		}

		rec, err := s.Update(c.UserContext(), id, in.ToProduct(id))
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		if err != nil {
			return fmt.Errorf("updating product %d: %w", id, err)
		}
		return c.JSON(rec)
	}
}

// DELETE /product/delete/:id
func DeleteProductHandler(s store.ProductStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := productIDParam(c)
		if err != nil {
			return err
		}

		rec, err := s.Delete(c.UserContext(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		if err != nil {
			return fmt.Errorf("deleting product %d: %w", id, err)
		}
		return c.JSON(DeleteProductResponse{
			Message: "Product deleted",
			ID:      rec.ID,
		})
	}
}

// parseProductEnvelope returns the product value of a {product: {...}} body.
// An empty body counts as a missing product, not as malformed JSON.
func parseProductEnvelope(c *fiber.Ctx) (*models.ProductInput, error) {
	var body models.ProductEnvelope
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if body.Product == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Product field is required")
	}
	return body.Product, nil
}

func productIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
	}
	return id, nil
}
