package toml

import (
	"fmt"
	"time"

	"github.com/sahifabooks/orderbot/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Orders  []orderSchema `toml:"orders"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported orders schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type orderSchema struct {
	Buyer       string       `toml:"buyer"`
	GrandTotal  int64        `toml:"grand_total"`
	FinalizedAt string       `toml:"finalized_at"`
	Items       []itemSchema `toml:"items"`
}

type itemSchema struct {
	Name      string `toml:"name"`
	UnitPrice int64  `toml:"unit_price"`
	Quantity  int64  `toml:"quantity"`
}

func toSchema(order domain.ArchivedOrder) orderSchema {
	items := make([]itemSchema, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemSchema{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return orderSchema{
		Buyer:       order.Buyer,
		GrandTotal:  order.GrandTotal,
		FinalizedAt: order.FinalizedAt.UTC().Format(time.RFC3339),
		Items:       items,
	}
}

func fromSchema(entry orderSchema) (domain.ArchivedOrder, error) {
	finalizedAt, err := time.Parse(time.RFC3339, entry.FinalizedAt)
	if err != nil {
		return domain.ArchivedOrder{}, fmt.Errorf("parse finalized_at %q: %w", entry.FinalizedAt, err)
	}

	items := make([]domain.LineItem, 0, len(entry.Items))
	for _, item := range entry.Items {
		items = append(items, domain.LineItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return domain.ArchivedOrder{
		Buyer:       entry.Buyer,
		Items:       items,
		GrandTotal:  entry.GrandTotal,
		FinalizedAt: finalizedAt,
	}, nil
}
