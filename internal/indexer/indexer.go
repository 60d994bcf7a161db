// Package indexer keeps the search index synchronized with the source
// document set.
package indexer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"regolamento-rag/internal/embedding"
	"regolamento-rag/internal/identity"
	"regolamento-rag/internal/index"
	"regolamento-rag/internal/models"
	"regolamento-rag/internal/segmenter"
)

// Mode selects the deduplication policy for a synchronization pass.
type Mode string

const (
	// ModeDocument skips a whole document when an index entry under the raw
	// document name exists, and otherwise indexes every derived article
	// unconditionally. Coarse, no reconciliation.
	ModeDocument Mode = "document"
	// ModeArticle deduplicates per article id, refreshes entries whose
	// stored version marker changed, and garbage-collects index entries not
	// produced by the pass. The default.
	ModeArticle Mode = "article"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDocument, ModeArticle:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown sync mode %q", s)
}

// Source lists and downloads source documents.
type Source interface {
	List(ctx context.Context) []models.SourceDocument
	Download(ctx context.Context, doc models.SourceDocument) ([]byte, error)
}

// ExtractFunc turns raw file bytes into plain document text.
type ExtractFunc func(name string, data []byte) (string, error)

type Indexer struct {
	source   Source
	extract  ExtractFunc
	embedder embedding.Embedder
	store    index.Store
	mode     Mode
	dryRun   bool
}

func New(source Source, extract ExtractFunc, embedder embedding.Embedder, store index.Store, mode Mode) *Indexer {
	return &Indexer{
		source:   source,
		extract:  extract,
		embedder: embedder,
		store:    store,
		mode:     mode,
	}
}

// SetDryRun makes Sync report intended index writes and deletes without
// issuing them. Embedding is skipped too, a dry run never calls the model.
func (ix *Indexer) SetDryRun(dryRun bool) {
	ix.dryRun = dryRun
}

// Sync runs one synchronization pass. Documents are processed sequentially;
// per-item failures are logged and abandoned, the pass itself always
// completes.
func (ix *Indexer) Sync(ctx context.Context) error {
	docs := ix.source.List(ctx)
	if len(docs) == 0 {
		log.Info().Msg("no source documents listed, nothing to index")
	}

	// seen maps every article id produced by this pass to its owning
	// document; it drives collision rejection and the reconciliation delete.
	seen := make(map[string]string)

	docFailed := false
	for _, doc := range docs {
		if ix.mode == ModeDocument {
			_, found, err := ix.store.Get(ctx, doc.Name)
			if err != nil {
				log.Warn().Err(err).Str("document", doc.Name).Msg("presence check failed, indexing anyway")
			} else if found {
				log.Info().Str("document", doc.Name).Msg("document already indexed, skipping")
				continue
			}
		}
		if err := ix.syncDocument(ctx, doc, seen); err != nil {
			docFailed = true
		}
	}

	if ix.mode == ModeArticle {
		// a failed document contributed no ids to seen; deleting its still
		// listed entries over a transient failure would empty the index, so
		// the pass keeps whatever is there and retries reconciliation next run
		if docFailed {
			log.Warn().Msg("a document failed to process, skipping reconciliation")
		} else {
			ix.reconcile(ctx, seen)
		}
	}
	return nil
}

func (ix *Indexer) syncDocument(ctx context.Context, doc models.SourceDocument, seen map[string]string) error {
	data, err := ix.source.Download(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("document", doc.Name).Msg("download failed, skipping document")
		return err
	}
	text, err := ix.extract(doc.Name, data)
	if err != nil {
		log.Error().Err(err).Str("document", doc.Name).Msg("text extraction failed, skipping document")
		return err
	}

	segments := segmenter.Segment(text)
	log.Info().Str("document", doc.Name).Int("articles", len(segments)).Msg("segmented document")

	for _, seg := range segments {
		id := identity.BuildID(doc.Name, seg.Ordinal)

		if owner, dup := seen[id]; dup && owner != doc.Name {
			log.Error().Str("id", id).Str("document", doc.Name).Str("conflicts_with", owner).
				Msg("article id collision across documents, rejecting")
			continue
		}
		seen[id] = doc.Name

		if ix.mode == ModeArticle {
			version, found, err := ix.store.Get(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("id", id).Msg("index lookup failed, treating id as absent")
			} else if found && version == doc.SHA {
				continue
			} else if found {
				log.Info().Str("id", id).Msg("version marker changed, refreshing article")
			}
		}

		if ix.dryRun {
			log.Info().Str("id", id).Msg("dry run, would index article")
			continue
		}

		vector, err := ix.embedder.EmbedQuery(ctx, identity.EmbeddingText(doc.Name, seg.Caption))
		if err != nil || len(vector) == 0 {
			log.Warn().Err(err).Str("id", id).Msg("embedding failed, skipping article")
			continue
		}

		rec := models.ArticleRecord{
			ID:        id,
			Title:     []string{identity.Title(seg.Ordinal, seg.Caption)},
			Content:   seg.Body,
			Embedding: vector,
			FileSHA:   doc.SHA,
		}
		if err := ix.store.Upsert(ctx, rec); err != nil {
			log.Error().Err(err).Str("id", id).Msg("index write failed")
			continue
		}
		log.Info().Str("id", id).Msg("indexed article")
	}
	return nil
}

// reconcile deletes every indexed id the current pass did not produce.
// A failed id listing degrades to an empty listing, which deletes nothing.
func (ix *Indexer) reconcile(ctx context.Context, seen map[string]string) {
	ids, err := ix.store.ListIDs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("id listing failed, skipping reconciliation")
		return
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		if ix.dryRun {
			log.Info().Str("id", id).Msg("dry run, would delete stale article")
			continue
		}
		if err := ix.store.Delete(ctx, id); err != nil {
			log.Error().Err(err).Str("id", id).Msg("index delete failed")
			continue
		}
		log.Info().Str("id", id).Msg("deleted stale article from index")
	}
}
