package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/serigraph/quotebot/internal/dialog"
	"github.com/serigraph/quotebot/internal/document"
	"github.com/serigraph/quotebot/internal/quote"
	"github.com/serigraph/quotebot/internal/services"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/storage"
)

func newChatCmd() *cobra.Command {
	var (
		user    string
		catalog string
		out     string
		company string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the bot from the console against an in-memory catalog",
		Long: `Reads one message per line from stdin and prints each reply.
Finalized quotes are written as PDFs to the --out directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewMemoryStore()
			if catalog != "" {
				seed, err := storage.LoadSeed(catalog)
				if err != nil {
					return err
				}
				if err := seed.Apply(cmd.Context(), store); err != nil {
					return fmt.Errorf("apply catalog: %w", err)
				}
			}

			finalizer := quote.NewFinalizer(
				document.NewRenderer(),
				services.NewFileDocumentSink(out),
				store,
				quote.WithCompanyName(company),
			)
			engine := dialog.NewEngine(session.NewStore(), store, finalizer)

			w := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				reply, err := engine.HandleMessage(cmd.Context(), user, text)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
				fmt.Fprintf(w, "> %s\n%s\n\n", text, reply)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&user, "user", "+5215500000000", "user id the messages come from")
	cmd.Flags().StringVar(&catalog, "catalog", "", "YAML catalog loaded into the in-memory store")
	cmd.Flags().StringVar(&out, "out", "quotes", "directory for generated PDFs")
	cmd.Flags().StringVar(&company, "company", "Serigraph", "company name printed on quotes")
	return cmd
}
