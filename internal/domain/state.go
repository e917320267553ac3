package domain

// SessionState is the position of one conversation inside the order-intake
// flow. A session starts at StateAwaitingBuyer and cycles through item name,
// price and quantity until the stop keyword finalizes it.
type SessionState int

const (
	StateAwaitingBuyer SessionState = iota
	StateAwaitingItemName
	StateAwaitingPrice
	StateAwaitingQuantity
	StateIdle
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingBuyer:
		return "awaiting_buyer"
	case StateAwaitingItemName:
		return "awaiting_item_name"
	case StateAwaitingPrice:
		return "awaiting_price"
	case StateAwaitingQuantity:
		return "awaiting_quantity"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Draft holds partially entered line-item fields until the full triple can be
// committed. Fields are populated strictly in state order and reset after
// every successful append.
type Draft struct {
	Name  string
	Price int64
}

func (d *Draft) Reset() {
	d.Name = ""
	d.Price = 0
}
