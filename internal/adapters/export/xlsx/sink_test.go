package xlsx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sahifabooks/orderbot/internal/domain"
)

func testReceipt() domain.Receipt {
	ledger := domain.NewOrderLedger("Acme")
	ledger.Append(domain.LineItem{Name: "Pen", UnitPrice: 4500, Quantity: 10})

	now := time.Date(2026, 3, 1, 14, 30, 5, 0, time.UTC)
	return domain.BuildReceipt(ledger.Snapshot(), "SAHIFABOOKS", now)
}

func TestExportWritesWorkbookLayout(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir)

	path, err := sink.Export(context.Background(), testReceipt())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, defaultWorkbookName), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"SAHIFABOOKS"}, rows[0])
	assert.Equal(t, []string{"Buyer: Acme"}, rows[1])
	assert.Equal(t, []string{"Date and Time: 2026-03-01 14:30:05"}, rows[2])
	assert.Equal(t, domain.ReceiptColumns, rows[3])
	assert.Equal(t, []string{"Pen", "4 500", "10", "45 000"}, rows[4])

	total, err := f.GetCellValue(sheetName, "D6")
	require.NoError(t, err)
	assert.Equal(t, "45 000", total)

	label, err := f.GetCellValue(sheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, domain.TotalRowLabel, label)
}

func TestExportOverwritesPreviousWorkbook(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir)

	_, err := sink.Export(context.Background(), testReceipt())
	require.NoError(t, err)

	ledger := domain.NewOrderLedger("Globex")
	ledger.Append(domain.LineItem{Name: "Stapler", UnitPrice: 300, Quantity: 2})
	updated := domain.BuildReceipt(ledger.Snapshot(), "SAHIFABOOKS", time.Now())

	path, err := sink.Export(context.Background(), updated)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	buyer, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Buyer: Globex", buyer)
}

func TestExportHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSink(t.TempDir()).Export(ctx, testReceipt())
	require.Error(t, err)
}
