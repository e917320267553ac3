package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahifabooks/orderbot/internal/domain"
)

func newOrdersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect archived orders",
	}

	cmd.AddCommand(
		newOrdersListCmd(app),
	)

	return cmd
}

func newOrdersListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List finalized orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := app.archive.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, order := range orders {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d item(s)\t%s\n",
					order.FinalizedAt.Format(domain.TimestampLayout),
					order.Buyer,
					len(order.Items),
					domain.GroupDigits(order.GrandTotal),
				)
			}

			return nil
		},
	}
}
