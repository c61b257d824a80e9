package pgvector

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/lib/pq"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*Index)(nil)

// collectionPattern restricts collection names to safe SQL identifiers.
// Names become table names, so they are validated here and quoted at every
// use site.
var collectionPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// Index implements driven.VectorIndex on a PostgreSQL table with a pgvector
// embedding column. Each collection maps to one table; similarity search
// uses the cosine distance operator.
type Index struct {
	db         *DB
	collection string
	dimensions int
}

// NewIndex validates the collection name and embedding dimensions. The
// backing table is created by InitSchema, not here, so construction never
// touches the database.
func NewIndex(db *DB, collection string, dimensions int) (*Index, error) {
	if !collectionPattern.MatchString(collection) {
		return nil, fmt.Errorf("%w: collection name %q must match %s",
			domain.ErrInvalidInput, collection, collectionPattern.String())
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: embedding dimensions must be positive, got %d",
			domain.ErrInvalidInput, dimensions)
	}

	return &Index{
		db:         db,
		collection: collection,
		dimensions: dimensions,
	}, nil
}

// Collection returns the collection name backing this index.
func (i *Index) Collection() string {
	return i.collection
}

// InitSchema enables the pgvector extension and creates the collection
// table. Idempotent - safe to run on every startup.
func (i *Index) InitSchema(ctx context.Context) error {
	if err := i.db.InitExtension(ctx); err != nil {
		return err
	}
	return i.createTable(ctx)
}

// Upsert stores vectors in a single transaction, replacing rows that share
// an ID.
func (i *Index) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	if len(vectors) == 0 {
		return nil
	}

	return i.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, document, source_url, source_title, chunk_index, total_chunks, char_count, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				document = EXCLUDED.document,
				source_url = EXCLUDED.source_url,
				source_title = EXCLUDED.source_title,
				chunk_index = EXCLUDED.chunk_index,
				total_chunks = EXCLUDED.total_chunks,
				char_count = EXCLUDED.char_count,
				embedding = EXCLUDED.embedding
		`, i.table())

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, v := range vectors {
			if len(v.Embedding) != i.dimensions {
				return fmt.Errorf("%w: vector %s has %d dimensions, index expects %d",
					domain.ErrInvalidInput, v.ID, len(v.Embedding), i.dimensions)
			}

			_, err = stmt.ExecContext(ctx,
				v.ID,
				v.Document,
				v.Metadata.SourceURL,
				v.Metadata.SourceTitle,
				v.Metadata.Index,
				v.Metadata.TotalChunks,
				v.Metadata.CharCount,
				pgv.NewVector(v.Embedding),
			)
			if err != nil {
				return fmt.Errorf("upsert vector %s: %w", v.ID, err)
			}
		}

		return nil
	})
}

// Query returns the topK nearest vectors by cosine distance, closest first.
func (i *Index) Query(ctx context.Context, embedding []float32, topK int) ([]domain.IndexHit, error) {
	if len(embedding) != i.dimensions {
		return nil, fmt.Errorf("%w: query embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), i.dimensions)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", domain.ErrInvalidInput, topK)
	}

	query := fmt.Sprintf(`
		SELECT id, document, source_url, source_title, chunk_index, total_chunks, char_count,
		       embedding <=> $1 AS distance
		FROM %s
		ORDER BY distance ASC
		LIMIT $2
	`, i.table())

	rows, err := i.db.QueryContext(ctx, query, pgv.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}
	defer rows.Close()

	var hits []domain.IndexHit
	for rows.Next() {
		var hit domain.IndexHit
		err := rows.Scan(
			&hit.ID,
			&hit.Document,
			&hit.Metadata.SourceURL,
			&hit.Metadata.SourceTitle,
			&hit.Metadata.Index,
			&hit.Metadata.TotalChunks,
			&hit.Metadata.CharCount,
			&hit.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// Count returns the number of stored vectors.
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, i.table())
	if err := i.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return count, nil
}

// Clear drops and recreates the collection table, discarding every vector.
func (i *Index) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, i.table())
	if _, err := i.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	return i.createTable(ctx)
}

// HealthCheck verifies the database is reachable.
func (i *Index) HealthCheck(ctx context.Context) error {
	return i.db.Ping(ctx)
}

// Close is a no-op; the connection pool is owned by the caller.
func (i *Index) Close() error {
	return nil
}

// createTable creates the collection table and its similarity index.
func (i *Index) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           TEXT PRIMARY KEY,
			document     TEXT NOT NULL,
			source_url   TEXT NOT NULL,
			source_title TEXT NOT NULL,
			chunk_index  INTEGER NOT NULL,
			total_chunks INTEGER NOT NULL,
			char_count   INTEGER NOT NULL,
			embedding    vector(%d) NOT NULL
		)
	`, i.table(), i.dimensions)
	if _, err := i.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create collection table: %w", err)
	}

	indexName := pq.QuoteIdentifier(i.collection + "_embedding_idx")
	query = fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (embedding vector_cosine_ops)
	`, indexName, i.table())
	if _, err := i.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create similarity index: %w", err)
	}

	return nil
}

// table returns the quoted table name for the collection.
func (i *Index) table() string {
	return pq.QuoteIdentifier(i.collection)
}
