// Package retriever answers "which single article best matches this
// question" against the search index.
package retriever

import (
	"context"

	"github.com/rs/zerolog/log"

	"regolamento-rag/internal/embedding"
	"regolamento-rag/internal/index"
	"regolamento-rag/internal/models"
)

const defaultTopK = 3

type Retriever struct {
	embedder embedding.Embedder
	store    index.Store
	topK     int
}

func New(embedder embedding.Embedder, store index.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns the single best-matching article for a question, or nil
// when nothing relevant is found. Several candidates are fetched and the
// maximum score selected explicitly, so the result does not depend on the
// backend returning candidates in score order.
func (r *Retriever) Retrieve(ctx context.Context, question string) (*models.Hit, error) {
	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil || len(vector) == 0 {
		log.Warn().Err(err).Msg("failed to embed question")
		return nil, nil
	}

	hits, err := r.store.Query(ctx, vector, r.topK)
	if err != nil {
		log.Warn().Err(err).Msg("similarity query failed")
		return nil, nil
	}
	if len(hits) == 0 {
		log.Info().Msg("no relevant articles found")
		return nil, nil
	}

	top := hits[0]
	for _, h := range hits[1:] {
		if h.Score > top.Score {
			top = h
		}
	}
	log.Info().Str("id", top.ID).Str("title", top.Title).Float64("score", top.Score).Msg("top article")
	return &top, nil
}
