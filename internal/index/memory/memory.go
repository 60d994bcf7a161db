// Package memory implements the index store in process, backed by chromem-go
// for similarity search. Intended for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"regolamento-rag/internal/models"
)

type Store struct {
	collection *chromem.Collection
	// chromem does not expose id listing or metadata lookup, so the store
	// keeps its own record of what it holds.
	records map[string]models.ArticleRecord
}

func NewStore(collectionName string) (*Store, error) {
	db := chromem.NewDB()
	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &Store{
		collection: c,
		records:    make(map[string]models.ArticleRecord),
	}, nil
}

func (s *Store) Get(ctx context.Context, id string) (string, bool, error) {
	rec, ok := s.records[id]
	if !ok {
		return "", false, nil
	}
	return rec.FileSHA, true, nil
}

func (s *Store) Upsert(ctx context.Context, rec models.ArticleRecord) error {
	title := ""
	if len(rec.Title) > 0 {
		title = rec.Title[0]
	}
	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Content,
		Embedding: rec.Embedding,
		Metadata:  map[string]string{"title": title, "file_sha": rec.FileSHA},
	}
	if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]models.Hit, error) {
	if k > len(s.records) {
		k = len(s.records)
	}
	if k == 0 {
		return nil, nil
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	hits := make([]models.Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, models.Hit{
			ID:      r.ID,
			Title:   r.Metadata["title"],
			Content: r.Content,
			Score:   float64(r.Similarity),
		})
	}
	return hits, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.collection.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	delete(s.records, id)
	return nil
}

func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}
