package view

import (
	"fmt"
	"io"

	"inventory-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Products"

// ExportXLSX writes rows as a single-sheet workbook. Prices are stored as
// numbers so the sheet can be summed.
func ExportXLSX(w io.Writer, rows []models.ProductRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("sheet adı ayarlanamadı: %w", err)
	}

	header := []interface{}{"ID", "Product ID", "Name", "Category", "Price", "In Stock"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		// kuruşa yuvarla, float gürültüsü sheet'e taşınmasın
		price, _ := decimal.NewFromFloat(r.Product.Price).Round(2).Float64()
		row := []interface{}{
			r.ID,
			r.Product.ProductID,
			r.Product.Name,
			r.Product.Category,
			price,
			FormatInStock(r.Product.InStock),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx yazılamadı: %w", err)
	}
	return nil
}
