package ports

import (
	"context"

	"github.com/sahifabooks/orderbot/internal/domain"
)

// OrderArchive keeps a record of finalized orders.
type OrderArchive interface {
	Save(ctx context.Context, order domain.ArchivedOrder) error
	List(ctx context.Context) ([]domain.ArchivedOrder, error)
}
