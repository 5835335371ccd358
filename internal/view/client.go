package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultRequestTimeout = 10 * time.Second

// APIError is a non-2xx answer from the product API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("product api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the product API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == fiber.StatusNotFound
}

// Client talks to the product API with fiber's HTTP client.
type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) List(ctx context.Context) ([]models.ProductRecord, error) {
	var out []models.ProductRecord
	if err := c.do(ctx, fiber.Get(c.baseURL+"/product/get"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, in *models.ProductInput) (models.ProductRecord, error) {
	var rec models.ProductRecord
	a := fiber.Post(c.baseURL + "/product/create").JSON(models.ProductEnvelope{Product: in})
	err := c.do(ctx, a, &rec)
	return rec, err
}

func (c *Client) Update(ctx context.Context, id int64, in *models.ProductInput) (models.ProductRecord, error) {
	var rec models.ProductRecord
	a := fiber.Put(fmt.Sprintf("%s/product/update/%d", c.baseURL, id)).JSON(models.ProductEnvelope{Product: in})
	err := c.do(ctx, a, &rec)
	return rec, err
}

func (c *Client) Delete(ctx context.Context, id int64) (int64, error) {
	var out struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	if err := c.do(ctx, fiber.Delete(fmt.Sprintf("%s/product/delete/%d", c.baseURL, id)), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// do sends the request prepared on a, which it releases, and decodes a 2xx
// JSON body into out. The agent has no context support, so the context
// deadline becomes the request timeout.
func (c *Client) do(ctx context.Context, a *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}
	timeout := defaultRequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	a.Timeout(timeout)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("product api: %w", errors.Join(errs...))
	}

	if code < 200 || code > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) != nil || msg.Message == "" {
			msg.Message = strings.TrimSpace(string(body))
		}
		return &APIError{Status: code, Message: msg.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("product api: decoding response: %w", err)
	}
	return nil
}
