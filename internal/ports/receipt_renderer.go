package ports

import "github.com/sahifabooks/orderbot/internal/domain"

// ReceiptRenderer turns a receipt into the human-readable text sent back over
// the chat transport.
type ReceiptRenderer interface {
	Render(receipt domain.Receipt) (string, error)
}
