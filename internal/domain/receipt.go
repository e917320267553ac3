package domain

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the second-precision format used in receipt headers and
// exported artifacts.
const TimestampLayout = "2006-01-02 15:04:05"

// TotalRowLabel labels the synthetic trailing row that carries the grand
// total.
const TotalRowLabel = "Total"

// ReceiptColumns is the column order shared by every receipt backend.
var ReceiptColumns = []string{"Name", "Price", "Quantity", "Subtotal"}

type ReceiptHeader struct {
	Title     string
	Buyer     string
	Timestamp string
}

// ReceiptRow carries display strings only; the exact integers stay on the
// ledger.
type ReceiptRow struct {
	Name     string
	Price    string
	Quantity string
	Subtotal string
}

type Receipt struct {
	Header       ReceiptHeader
	Rows         []ReceiptRow
	TotalDisplay string
	GrandTotal   int64
}

// BuildReceipt renders an order snapshot into its tabular receipt form. Rows
// and the total are pure functions of the snapshot; only the header timestamp
// depends on now.
func BuildReceipt(snapshot OrderSnapshot, title string, now time.Time) Receipt {
	rows := make([]ReceiptRow, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		rows = append(rows, ReceiptRow{
			Name:     item.Name,
			Price:    GroupDigits(item.UnitPrice),
			Quantity: GroupDigits(item.Quantity),
			Subtotal: GroupDigits(item.Subtotal()),
		})
	}

	return Receipt{
		Header: ReceiptHeader{
			Title:     title,
			Buyer:     snapshot.Buyer,
			Timestamp: now.Format(TimestampLayout),
		},
		Rows:         rows,
		TotalDisplay: GroupDigits(snapshot.GrandTotal),
		GrandTotal:   snapshot.GrandTotal,
	}
}

// GroupDigits formats n with a space between each three-digit group, e.g.
// 45000 -> "45 000".
func GroupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
