// Package store holds the product record stores the API can run against.
package store

import (
	"context"
	"errors"

	"inventory-backend/internal/models"
)

var (
	// ErrNotFound is returned by Update and Delete when no record has the id.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("duplicate product id")
)

// maxInsertAttempts bounds the insert-and-retry loop on duplicate ids.
const maxInsertAttempts = 5

// ProductStore is the document store behind the product API.
type ProductStore interface {
	// List returns every record ordered by ascending id.
	List(ctx context.Context) ([]models.ProductRecord, error)
	// Create assigns the next id and persists the record. A zero ProductID
	// is replaced by the assigned id.
	Create(ctx context.Context, p models.Product) (models.ProductRecord, error)
	// Update replaces the embedded product of record id.
	Update(ctx context.Context, id int64, p models.Product) (models.ProductRecord, error)
	// Delete removes record id and returns what was removed.
	Delete(ctx context.Context, id int64) (models.ProductRecord, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func newRecord(id int64, p models.Product) models.ProductRecord {
	if p.ProductID == 0 {
		p.ProductID = id
	}
	return models.ProductRecord{ID: id, Product: p}
}
