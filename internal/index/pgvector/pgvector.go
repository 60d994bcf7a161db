// Package pgvector implements the index store on Postgres with the pgvector
// extension, via bun.
package pgvector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"regolamento-rag/internal/config"
	"regolamento-rag/internal/models"
)

type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`
	ID            string    `bun:"id,pk"`
	Title         string    `bun:"title,notnull"`
	Content       string    `bun:"content,notnull"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(768)"`
	FileSHA       string    `bun:"file_sha,notnull"`
}

func Connect(cfg *config.DatabaseConfig) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*Article)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (string, bool, error) {
	var article Article
	err := s.db.NewSelect().
		Model(&article).
		Column("file_sha").
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return article.FileSHA, true, nil
}

func (s *Store) Upsert(ctx context.Context, rec models.ArticleRecord) error {
	title := ""
	if len(rec.Title) > 0 {
		title = rec.Title[0]
	}
	article := &Article{
		ID:        rec.ID,
		Title:     title,
		Content:   rec.Content,
		Embedding: rec.Embedding,
		FileSHA:   rec.FileSHA,
	}
	_, err := s.db.NewInsert().
		Model(article).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("content = EXCLUDED.content").
		Set("embedding = EXCLUDED.embedding").
		Set("file_sha = EXCLUDED.file_sha").
		Exec(ctx)
	return err
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]models.Hit, error) {
	var rows []struct {
		ID      string  `bun:"id"`
		Title   string  `bun:"title"`
		Content string  `bun:"content"`
		Score   float64 `bun:"score"`
	}
	err := s.db.NewSelect().
		Model((*Article)(nil)).
		Column("id", "title", "content").
		ColumnExpr("1 - (embedding <=> ?) AS score", vector).
		OrderExpr("embedding <=> ?", vector).
		Limit(k).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	hits := make([]models.Hit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, models.Hit{
			ID:      row.ID,
			Title:   row.Title,
			Content: row.Content,
			Score:   row.Score,
		})
	}
	return hits, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.NewDelete().
		Model((*Article)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.NewSelect().
		Model((*Article)(nil)).
		Column("id").
		Scan(ctx, &ids)
	return ids, err
}
