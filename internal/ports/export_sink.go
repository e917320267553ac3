package ports

import (
	"context"

	"github.com/sahifabooks/orderbot/internal/domain"
)

// ExportSink writes a receipt to an external tabular artifact and returns the
// artifact path. It is called after every accepted line item and once at
// finalize; a failure never rolls back the in-memory ledger.
type ExportSink interface {
	Export(ctx context.Context, receipt domain.Receipt) (string, error)
}
