package cli

import (
	"context"
	"fmt"

	"regolamento-rag/internal/index"
	"regolamento-rag/internal/index/memory"
	"regolamento-rag/internal/index/pgvector"
	"regolamento-rag/internal/index/solr"
)

const memoryCollection = "regolamento"

// newStore builds the configured index backend. The returned cleanup is
// always safe to call.
func newStore(ctx context.Context) (index.Store, func(), error) {
	switch cfg.Index.Backend {
	case "solr":
		return solr.NewClient(cfg.Index.SolrURL), func() {}, nil
	case "postgres":
		db := pgvector.Connect(&cfg.Database)
		store := pgvector.NewStore(db)
		if err := store.Init(ctx); err != nil {
			_ = db.Close()
			return nil, func() {}, fmt.Errorf("initializing article table: %w", err)
		}
		return store, func() { _ = db.Close() }, nil
	case "memory":
		store, err := memory.NewStore(memoryCollection)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}
}
