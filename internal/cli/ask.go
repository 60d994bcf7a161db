package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"regolamento-rag/internal/answer"
	"regolamento-rag/internal/embedding"
	"regolamento-rag/internal/rag"
	"regolamento-rag/internal/retriever"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question grounded on the indexed articles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		embedder, err := embedding.NewOllamaEmbedder(&cfg.EmbedLLM)
		if err != nil {
			return err
		}

		store, cleanup, err := newStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		svc := rag.New(
			retriever.New(embedder, store, cfg.RAG.TopK),
			answer.NewComposer(&cfg.GenLLM),
		)
		response := svc.Ask(cmd.Context(), question)

		fmt.Printf("Domanda: %s\n\n", response.Query)
		if response.Source != "" {
			fmt.Printf("Fonte: %s\n\n", response.Source)
		}
		fmt.Printf("Risposta: %s\n", strings.TrimSpace(response.Content))
		return nil
	},
}
