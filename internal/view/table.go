package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"inventory-backend/internal/models"

	"github.com/shopspring/decimal"
)

var tableHeader = []string{"ID", "Name", "Category", "Price", "In Stock"}

// Rows returns the records whose name contains filter, ordered by id. The
// match is case-sensitive; an empty filter keeps everything.
func Rows(products map[int64]models.ProductRecord, filter string) []models.ProductRecord {
	rows := make([]models.ProductRecord, 0, len(products))
	for _, r := range products {
		if !strings.Contains(r.Product.Name, filter) {
			continue
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

func FormatInStock(inStock bool) string {
	if inStock {
		return "Yes"
	}
	return "No"
}

func rowCells(r models.ProductRecord) []string {
	return []string{
		fmt.Sprint(r.ID),
		r.Product.Name,
		r.Product.Category,
		FormatPrice(r.Product.Price),
		FormatInStock(r.Product.InStock),
	}
}

// RenderTable writes rows as an aligned text table.
func RenderTable(w io.Writer, rows []models.ProductRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(rowCells(r), "\t"))
	}
	return tw.Flush()
}
