package domain

import "time"

// OrderLedger accumulates line items for a single buyer in entry order.
// Append-only except for Clear; the grand total is recomputed on every read
// so it can never go stale.
type OrderLedger struct {
	buyer string
	items []LineItem
}

// OrderSnapshot is a read-only copy of a ledger taken at one point in time.
type OrderSnapshot struct {
	Buyer      string
	Items      []LineItem
	GrandTotal int64
}

// ArchivedOrder is a finalized order as persisted by the order archive.
type ArchivedOrder struct {
	Buyer       string
	Items       []LineItem
	GrandTotal  int64
	FinalizedAt time.Time
}

func NewOrderLedger(buyer string) *OrderLedger {
	return &OrderLedger{buyer: buyer}
}

func (l *OrderLedger) Buyer() string {
	return l.buyer
}

func (l *OrderLedger) Append(item LineItem) {
	l.items = append(l.items, item)
}

func (l *OrderLedger) GrandTotal() int64 {
	var total int64
	for _, item := range l.items {
		total += item.Subtotal()
	}
	return total
}

func (l *OrderLedger) Clear() {
	l.items = nil
}

func (l *OrderLedger) IsEmpty() bool {
	return len(l.items) == 0
}

func (l *OrderLedger) Len() int {
	return len(l.items)
}

// Items returns a copy so callers cannot mutate committed entries.
func (l *OrderLedger) Items() []LineItem {
	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	return items
}

func (l *OrderLedger) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		Buyer:      l.buyer,
		Items:      l.Items(),
		GrandTotal: l.GrandTotal(),
	}
}
