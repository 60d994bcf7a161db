// Package index defines the search-index collaborator contract shared by
// the Solr, Postgres and in-memory backends.
package index

import (
	"context"

	"regolamento-rag/internal/models"
)

// Store persists article records and supports similarity search.
type Store interface {
	// Get reports whether id is present in the index and, if so, the
	// version marker stored with it.
	Get(ctx context.Context, id string) (version string, found bool, err error)
	// Upsert writes one record. Writes are independent; a failure affects
	// only the record it was issued for.
	Upsert(ctx context.Context, rec models.ArticleRecord) error
	// Query returns up to k candidates ranked by similarity to vector.
	// Candidate order is backend-defined and must not be relied on.
	Query(ctx context.Context, vector []float32, k int) ([]models.Hit, error)
	// Delete removes one record by id.
	Delete(ctx context.Context, id string) error
	// ListIDs returns every id currently in the index.
	ListIDs(ctx context.Context) ([]string, error)
}
