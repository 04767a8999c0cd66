package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"video-digest/pkg/domain"
)

// SQLStore implements SummaryStore on top of any DBProvider (plain Postgres
// or Supabase). The summary payload is kept as one JSONB column; the columns
// that queries filter or sort on (video id, creation time) are first-class.
type SQLStore struct {
	provider DBProvider
}

// NewSQLStore builds a store over an already-connected provider.
func NewSQLStore(provider DBProvider) *SQLStore {
	return &SQLStore{provider: provider}
}

// Init creates the summaries table if it does not exist.
func (s *SQLStore) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS summaries (
	video_id   TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	channel    TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL DEFAULT '',
	payload    JSONB NOT NULL,
	transcript TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create summaries table: %w", err)
	}
	return nil
}

// Get returns the entry for videoID.
func (s *SQLStore) Get(ctx context.Context, videoID string) (domain.StoredSummary, error) {
	const q = `
SELECT video_id, title, channel, url, payload, transcript, created_at
FROM summaries WHERE video_id = $1`

	row := s.db().QueryRowContext(ctx, q, videoID)
	entry, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredSummary{}, ErrNotFound
	}
	if err != nil {
		return domain.StoredSummary{}, fmt.Errorf("get summary %s: %w", videoID, err)
	}
	return entry, nil
}

// Put inserts entry. Insert-if-absent is done in one statement so two racing
// writers cannot both win; the loser sees ErrAlreadyExists.
func (s *SQLStore) Put(ctx context.Context, entry domain.StoredSummary, overwrite bool) error {
	payload, err := json.Marshal(entry.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary payload: %w", err)
	}

	q := `
INSERT INTO summaries (video_id, title, channel, url, payload, transcript, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (video_id) DO NOTHING`
	if overwrite {
		q = `
INSERT INTO summaries (video_id, title, channel, url, payload, transcript, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (video_id) DO UPDATE SET
	title = EXCLUDED.title,
	channel = EXCLUDED.channel,
	url = EXCLUDED.url,
	payload = EXCLUDED.payload,
	transcript = EXCLUDED.transcript,
	created_at = EXCLUDED.created_at`
	}

	res, err := s.db().ExecContext(ctx, q,
		entry.VideoID, entry.Title, entry.Channel, entry.URL,
		payload, entry.Transcript, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary %s: %w", entry.VideoID, err)
	}
	if !overwrite {
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrAlreadyExists
		}
	}
	return nil
}

// Exists reports whether videoID has an entry.
func (s *SQLStore) Exists(ctx context.Context, videoID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM summaries WHERE video_id = $1)`

	var exists bool
	if err := s.db().QueryRowContext(ctx, q, videoID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check summary %s: %w", videoID, err)
	}
	return exists, nil
}

// ListWindow returns entries created within [from, to), oldest first.
func (s *SQLStore) ListWindow(ctx context.Context, from, to time.Time) ([]domain.StoredSummary, error) {
	const q = `
SELECT video_id, title, channel, url, payload, transcript, created_at
FROM summaries
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at`

	rows, err := s.db().QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StoredSummary
	for rows.Next() {
		entry, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return entries, nil
}

func (s *SQLStore) db() *sql.DB {
	return s.provider.DB()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (domain.StoredSummary, error) {
	var (
		entry   domain.StoredSummary
		payload []byte
	)
	if err := row.Scan(
		&entry.VideoID, &entry.Title, &entry.Channel, &entry.URL,
		&payload, &entry.Transcript, &entry.CreatedAt,
	); err != nil {
		return domain.StoredSummary{}, err
	}
	if err := json.Unmarshal(payload, &entry.Summary); err != nil {
		return domain.StoredSummary{}, fmt.Errorf("decode summary payload: %w", err)
	}
	entry.Summary.Normalize()
	return entry, nil
}
