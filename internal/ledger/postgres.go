package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// request_id may come from the client (X-Request-ID) and is not unique; rows are keyed by id.
const schema = `
CREATE TABLE IF NOT EXISTS simplify_requests (
	id          BIGSERIAL PRIMARY KEY,
	request_id  TEXT NOT NULL,
	channel     TEXT NOT NULL,
	language    TEXT NOT NULL,
	verdict     SMALLINT,
	outcome     TEXT NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS simplify_requests_request_id_idx ON simplify_requests (request_id)`

const insertEntry = `
INSERT INTO simplify_requests (request_id, channel, language, verdict, outcome, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Postgres struct {
	pool *pgxpool.Pool
	db   execer
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database, Error: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("Failed to ping database: %w", err)
	}

	return &Postgres{pool: pool, db: pool}, nil
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("Failed to create simplify_requests table: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, entry Entry) error {
	_, err := p.db.Exec(ctx, insertEntry,
		entry.RequestID,
		string(entry.Channel),
		string(entry.Language),
		verdictColumn(entry.Verdict),
		entry.Outcome,
		entry.Duration.Milliseconds(),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Failed to record request %s: %w", entry.RequestID, err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func verdictColumn(verdict string) any {
	switch verdict {
	case "medical":
		return 1
	case "reject":
		return 0
	default:
		return nil
	}
}
