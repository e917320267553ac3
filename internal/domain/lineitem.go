package domain

// ConversationID identifies one chat conversation. Each conversation owns at
// most one live order session.
type ConversationID string

// LineItem is one committed (name, unit price, quantity) entry. Immutable
// once appended to a ledger.
type LineItem struct {
	Name      string
	UnitPrice int64
	Quantity  int64
}

func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * li.Quantity
}
