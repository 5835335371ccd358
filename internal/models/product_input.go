package models

import "strings"

// ProductInput is the client-supplied product value. Optional and required
// fields are pointers so that absence can be told apart from zero values.
type ProductInput struct {
	ProductID *int64   `json:"productid,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Name      *string  `json:"name,omitempty"`
	InStock   *bool    `json:"instock,omitempty"`
}

// ProductEnvelope is the {product: {...}} body of create and update requests.
type ProductEnvelope struct {
	Product *ProductInput `json:"product"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate reports every missing required field. A nil result means the
// input can be turned into a Product.
func (in *ProductInput) Validate() []FieldError {
	var errs []FieldError
	if in.Category == nil || strings.TrimSpace(*in.Category) == "" {
		errs = append(errs, FieldError{Field: "product.category", Message: "category is required"})
	}
	if in.Price == nil {
		errs = append(errs, FieldError{Field: "product.price", Message: "price is required"})
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, FieldError{Field: "product.name", Message: "name is required"})
	}
	return errs
}

// ToProduct applies the defaults for a record with the given id: productid
// falls back to id, instock falls back to true. Pass id 0 when the record id
// is not known yet; stores fill a zero productid at insert time.
func (in *ProductInput) ToProduct(id int64) Product {
	p := Product{
		ProductID: id,
		InStock:   true,
	}
	if in.ProductID != nil && *in.ProductID != 0 {
		p.ProductID = *in.ProductID
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	return p
}

// InputFromProduct builds a full replacement input from an existing value.
func InputFromProduct(p Product) *ProductInput {
	return &ProductInput{
		ProductID: &p.ProductID,
		Category:  &p.Category,
		Price:     &p.Price,
		Name:      &p.Name,
		InStock:   &p.InStock,
	}
}
