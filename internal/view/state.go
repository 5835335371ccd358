// Package view is the inventory client: a state container holding the last
// known records, pure render functions over it, and the calls that keep it
// in step with the product API.
package view

import "inventory-backend/internal/models"

// State is never mutated in place; every transition returns a new value.
type State struct {
	Products   map[int64]models.ProductRecord
	FilterText string
}

// WithProducts replaces the whole cache with list.
func (s State) WithProducts(list []models.ProductRecord) State {
	products := make(map[int64]models.ProductRecord, len(list))
	for _, r := range list {
		products[r.ID] = r
	}
	s.Products = products
	return s
}

// WithRecord merges one server record into the cache.
func (s State) WithRecord(rec models.ProductRecord) State {
	products := make(map[int64]models.ProductRecord, len(s.Products)+1)
	for id, r := range s.Products {
		products[id] = r
	}
	products[rec.ID] = rec
	s.Products = products
	return s
}

func (s State) WithoutID(id int64) State {
	products := make(map[int64]models.ProductRecord, len(s.Products))
	for k, r := range s.Products {
		if k != id {
			products[k] = r
		}
	}
	s.Products = products
	return s
}

func (s State) WithFilter(text string) State {
	s.FilterText = text
	return s
}
