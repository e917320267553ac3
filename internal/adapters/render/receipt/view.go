package receipt

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sahifabooks/orderbot/internal/domain"
)

func renderView(receipt domain.Receipt, s styles) string {
	totalRow := len(receipt.Rows)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(domain.ReceiptColumns...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return s.header
			case totalRow:
				return s.total
			default:
				return s.cell
			}
		})

	for _, row := range receipt.Rows {
		tbl.Row(row.Name, row.Price, row.Quantity, row.Subtotal)
	}
	tbl.Row(domain.TotalRowLabel, "", "", receipt.TotalDisplay)

	lines := []string{
		s.title.Render(receipt.Header.Title),
		s.buyer.Render("Buyer: " + receipt.Header.Buyer),
		tbl.Render(),
		s.timestamp.Render("Date and Time: " + receipt.Header.Timestamp),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
