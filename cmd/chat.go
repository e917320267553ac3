package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sahifabooks/orderbot/internal/application"
	"github.com/sahifabooks/orderbot/internal/domain"
)

func newChatCmd(app *app) *cobra.Command {
	var conversationID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run an interactive order-intake session",
		Long:  "chat reads messages line by line: first the buyer name, then item name/price/quantity triples. /start restarts the session, the stop keyword finalizes it. EOF finalizes an open session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer app.service.Close()

			id := domain.ConversationID(conversationID)
			if id == "" {
				id = domain.ConversationID(uuid.NewString())
			}

			out := cmd.OutOrStdout()

			msg, err := app.service.Begin(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, msg.Text)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				// pass lines through untrimmed: surrounding whitespace is
				// significant in names, only fully blank lines are skipped
				text := scanner.Text()
				if strings.TrimSpace(text) == "" {
					continue
				}

				var reply application.OutboundMessage
				if strings.EqualFold(text, "/start") {
					reply, err = app.service.Begin(cmd.Context(), id)
				} else {
					reply, err = app.service.Handle(cmd.Context(), id, text)
				}
				if err != nil {
					return err
				}
				printReply(out, reply)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read chat input: %w", err)
			}

			// EOF with an open session behaves like an explicit finalize
			if app.service.Active(id) {
				reply, err := app.service.Finalize(cmd.Context(), id)
				if err != nil {
					return err
				}
				printReply(out, reply)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation identifier (random if empty)")

	return cmd
}

func printReply(out io.Writer, reply application.OutboundMessage) {
	fmt.Fprintln(out, reply.Text)
	if reply.Attachment != nil {
		fmt.Fprintf(out, "saved: %s\n", reply.Attachment.Path)
	}
}
