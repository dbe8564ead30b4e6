package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

const sheetName = "Stock"

// StockReportUseCase genera el reporte XLSX de posiciones de stock para
// descarga desde el dashboard. Usa la misma consulta (y por tanto la misma
// clasificación) que la vista de stocks.
type StockReportUseCase struct {
	stocks *inventory.StockQueryUseCase
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(stocks *inventory.StockQueryUseCase) *StockReportUseCase {
	return &StockReportUseCase{stocks: stocks}
}

// GenerateXLSX arma el libro con una fila por posición (producto, tienda).
func (uc *StockReportUseCase) GenerateXLSX(ctx context.Context, filter repository.StockFilter) ([]byte, error) {
	items, err := uc.stocks.ListStocks(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Producto", "SKU", "Tienda", "Ubicación", "Cantidad", "Estado"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}

	for row, item := range items {
		values := []any{item.ProductName, item.SKU, item.StoreName, item.Location, item.Quantity, item.Status}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("celda de datos: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("escribir fila: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
