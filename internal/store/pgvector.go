// Package store provides the PostgreSQL/pgvector-backed snippet index.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/types"
)

// embeddingDims matches the output dimensionality of the configured
// embedding model (text-embedding-004).
const embeddingDims = 768

// Embedder turns text into a vector. The LLM client satisfies this.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// SnippetStore is a snippet index backed by PostgreSQL with the pgvector
// extension. It implements retrieval.Index.
type SnippetStore struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// Open establishes a connection pool to the database and wires the given
// embedder for population and querying.
func Open(ctx context.Context, databaseURL string, embedder Embedder) (*SnippetStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SnippetStore{pool: pool, embedder: embedder}, nil
}

// Close closes the connection pool
func (s *SnippetStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the vector extension and snippets table if missing.
func (s *SnippetStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS snippets (
			id UUID PRIMARY KEY,
			source_id TEXT UNIQUE NOT NULL,
			text TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			seniority TEXT NOT NULL DEFAULT '',
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, embeddingDims),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert embeds a snippet's text and stores it, replacing any previous row
// with the same source ID.
func (s *SnippetStore) Upsert(ctx context.Context, snippet types.Snippet) error {
	embedding, err := s.embedder.EmbedText(ctx, snippet.Text)
	if err != nil {
		return fmt.Errorf("failed to embed snippet %s: %w", snippet.ID, err)
	}

	tags := snippet.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snippets (id, source_id, text, tags, seniority, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (source_id) DO UPDATE
		 SET text = $3, tags = $4, seniority = $5, embedding = $6, created_at = NOW()`,
		uuid.New(), snippet.ID, snippet.Text, tags, snippet.Seniority,
		pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snippet %s: %w", snippet.ID, err)
	}
	return nil
}

// Count returns the number of indexed snippets.
func (s *SnippetStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM snippets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snippets: %w", err)
	}
	return count, nil
}

// Query embeds the query text and returns up to limit candidates ordered by
// cosine distance. An empty table yields an empty slice, not an error.
func (s *SnippetStore) Query(ctx context.Context, text string, limit int) ([]retrieval.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	embedding, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT text, tags, seniority, embedding <=> $1 AS distance
		 FROM snippets
		 ORDER BY distance
		 LIMIT $2`,
		pgvector.NewVector(embedding), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snippets: %w", err)
	}
	defer rows.Close()

	var candidates []retrieval.Candidate
	for rows.Next() {
		var c retrieval.Candidate
		if err := rows.Scan(&c.Text, &c.Tags, &c.Seniority, &c.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan snippet row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snippet rows: %w", err)
	}

	return candidates, nil
}
