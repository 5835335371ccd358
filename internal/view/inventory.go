package view

import (
	"context"
	"io"
	"log"

	"inventory-backend/internal/models"
)

// API is the subset of the product API the inventory needs.
type API interface {
	List(ctx context.Context) ([]models.ProductRecord, error)
	Create(ctx context.Context, in *models.ProductInput) (models.ProductRecord, error)
	Update(ctx context.Context, id int64, in *models.ProductInput) (models.ProductRecord, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Inventory owns the client-side state and reconciles it with API answers.
// A failed call is logged and leaves the state as it was.
type Inventory struct {
	api   API
	state State
	log   *log.Logger
}

func NewInventory(api API, logger *log.Logger) *Inventory {
	if logger == nil {
		logger = log.Default()
	}
	return &Inventory{api: api, state: State{}.WithProducts(nil), log: logger}
}

func (inv *Inventory) State() State {
	return inv.state
}

// Load fetches the full list and replaces the cache.
func (inv *Inventory) Load(ctx context.Context) error {
	list, err := inv.api.List(ctx)
	if err != nil {
		inv.log.Printf("Error loading products: %v", err)
		return err
	}
	inv.state = inv.state.WithProducts(list)
	return nil
}

func (inv *Inventory) Save(ctx context.Context, in *models.ProductInput) (models.ProductRecord, error) {
	rec, err := inv.api.Create(ctx, in)
	if err != nil {
		inv.log.Printf("Error saving product: %v", err)
		return models.ProductRecord{}, err
	}
	inv.state = inv.state.WithRecord(rec)
	return rec, nil
}

func (inv *Inventory) Edit(ctx context.Context, id int64, in *models.ProductInput) (models.ProductRecord, error) {
	rec, err := inv.api.Update(ctx, id, in)
	if err != nil {
		inv.log.Printf("Error updating product %d: %v", id, err)
		return models.ProductRecord{}, err
	}
	inv.state = inv.state.WithRecord(rec)
	return rec, nil
}

func (inv *Inventory) Destroy(ctx context.Context, id int64) error {
	if _, err := inv.api.Delete(ctx, id); err != nil {
		inv.log.Printf("Error deleting product %d: %v", id, err)
		return err
	}
	inv.state = inv.state.WithoutID(id)
	return nil
}

// Filter only changes local state; no request is sent.
func (inv *Inventory) Filter(text string) {
	inv.state = inv.state.WithFilter(text)
}

// Visible returns the rows the current filter lets through.
func (inv *Inventory) Visible() []models.ProductRecord {
	return Rows(inv.state.Products, inv.state.FilterText)
}

func (inv *Inventory) Render(w io.Writer) error {
	return RenderTable(w, inv.Visible())
}
