package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/sahifabooks/orderbot/internal/domain"
	"github.com/sahifabooks/orderbot/internal/ports"
)

const (
	defaultWorkbookName = "orders.xlsx"
	sheetName           = "Sheet1"
	exportDirMode       = 0o700
)

// Sink writes receipts to a spreadsheet workbook. Every export rewrites the
// whole workbook so the artifact always mirrors the latest receipt: three
// leading header rows (title, buyer, timestamp), the column header row, one
// row per line item and a trailing total row. A mutex serializes writers so
// concurrent exports cannot tear the shared file.
type Sink struct {
	mu   sync.Mutex
	path string
}

var _ ports.ExportSink = (*Sink)(nil)

// NewSink writes workbooks under dir, reusing one file across exports.
func NewSink(dir string) *Sink {
	return &Sink{path: filepath.Join(dir, defaultWorkbookName)}
}

func (s *Sink) Export(ctx context.Context, receipt domain.Receipt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), exportDirMode); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rows := [][]interface{}{
		{receipt.Header.Title},
		{"Buyer: " + receipt.Header.Buyer},
		{"Date and Time: " + receipt.Header.Timestamp},
		columnsRow(),
	}
	for _, row := range receipt.Rows {
		rows = append(rows, []interface{}{row.Name, row.Price, row.Quantity, row.Subtotal})
	}
	rows = append(rows, []interface{}{domain.TotalRowLabel, "", "", receipt.TotalDisplay})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("resolve cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("write workbook row: %w", err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	return s.path, nil
}

func columnsRow() []interface{} {
	row := make([]interface{}, len(domain.ReceiptColumns))
	for i, column := range domain.ReceiptColumns {
		row[i] = column
	}
	return row
}
