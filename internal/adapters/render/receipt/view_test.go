package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahifabooks/orderbot/internal/domain"
)

func buildTestReceipt(t *testing.T) domain.Receipt {
	t.Helper()

	ledger := domain.NewOrderLedger("Acme")
	ledger.Append(domain.LineItem{Name: "Pen", UnitPrice: 4500, Quantity: 10})
	ledger.Append(domain.LineItem{Name: "Notebook", UnitPrice: 12000, Quantity: 3})

	now := time.Date(2026, 3, 1, 14, 30, 5, 0, time.UTC)
	return domain.BuildReceipt(ledger.Snapshot(), "SAHIFABOOKS", now)
}

func TestRenderReceipt(t *testing.T) {
	output, err := Render(buildTestReceipt(t))
	require.NoError(t, err)

	assert.Contains(t, output, "SAHIFABOOKS")
	assert.Contains(t, output, "Buyer: Acme")
	assert.Contains(t, output, "Date and Time: 2026-03-01 14:30:05")

	for _, column := range domain.ReceiptColumns {
		assert.Contains(t, output, column)
	}

	assert.Contains(t, output, "Pen")
	assert.Contains(t, output, "4 500")
	assert.Contains(t, output, "45 000")
	assert.Contains(t, output, "Notebook")
	assert.Contains(t, output, domain.TotalRowLabel)
	assert.Contains(t, output, "81 000")
}

func TestRenderReceiptIsDeterministic(t *testing.T) {
	receipt := buildTestReceipt(t)

	first, err := Render(receipt)
	require.NoError(t, err)
	second, err := Render(receipt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderEmptyReceipt(t *testing.T) {
	receipt := domain.BuildReceipt(domain.NewOrderLedger("Acme").Snapshot(), "SAHIFABOOKS", time.Now())

	output, err := Render(receipt)
	require.NoError(t, err)

	assert.Contains(t, output, "Buyer: Acme")
	assert.Contains(t, output, domain.TotalRowLabel)
	assert.Contains(t, output, "0")
}
