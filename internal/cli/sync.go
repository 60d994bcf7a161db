package cli

import (
	"time"

	"github.com/spf13/cobra"

	"regolamento-rag/internal/embedding"
	"regolamento-rag/internal/extractor"
	"regolamento-rag/internal/indexer"
	"regolamento-rag/internal/source"
)

var (
	syncModeFlag string
	dryRunFlag   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the search index with the source document set",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncMode := cfg.RAG.SyncMode
		if syncModeFlag != "" {
			syncMode = syncModeFlag
		}
		mode, err := indexer.ParseMode(syncMode)
		if err != nil {
			return err
		}

		src, err := source.NewClient(&cfg.GitHub)
		if err != nil {
			return err
		}

		embedder, err := embedding.NewOllamaEmbedder(&cfg.EmbedLLM)
		if err != nil {
			return err
		}

		store, cleanup, err := newStore(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		ix := indexer.New(src, extractor.Extract, embedding.NewCached(embedder, time.Hour), store, mode)
		ix.SetDryRun(dryRunFlag)
		return ix.Sync(cmd.Context())
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncModeFlag, "mode", "", "sync mode: article or document (default from config)")
	syncCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "report intended index writes and deletes without issuing them")
}
