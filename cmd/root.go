package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orderbot",
		Short:         "orderbot: chat-driven order intake with receipts and spreadsheet export",
		Long:          "orderbot runs interactive order-intake sessions: a buyer name followed by item name/price/quantity triples, with running receipts, spreadsheet export and a local archive of finalized orders.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newOrdersCmd(app),
	)

	return rootCmd
}
