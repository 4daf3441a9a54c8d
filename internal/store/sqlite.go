package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/hoyotext/internal/model"
)

// Ensure SQLiteStore implements model.RecordArchive.
var _ model.RecordArchive = (*SQLiteStore)(nil)

// SQLiteStore keeps the latest normalized record of every scraped page.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// records table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS records (
		wiki       TEXT    NOT NULL,
		page_id    INTEGER NOT NULL,
		type       TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		body       TEXT    NOT NULL,
		scraped_at DATETIME NOT NULL,
		PRIMARY KEY (wiki, page_id)
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts or replaces the record for (family, page id).
func (s *SQLiteStore) Save(ctx context.Context, rec model.ArchivedRecord) error {
	body, err := json.Marshal(rec.Record)
	if err != nil {
		return fmt.Errorf("encoding record %s/%d: %w", rec.Family, rec.PageID, err)
	}
	scrapedAt := rec.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (wiki, page_id, type, name, body, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (wiki, page_id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			body = excluded.body,
			scraped_at = excluded.scraped_at`,
		string(rec.Family), rec.PageID, rec.Record.Type, rec.Record.Name, string(body), scrapedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving record %s/%d: %w", rec.Family, rec.PageID, err)
	}
	return nil
}

// Get returns the archived record of one page, or nil when the page was never
// archived.
func (s *SQLiteStore) Get(ctx context.Context, family model.GameFamily, pageID int) (*model.ArchivedRecord, error) {
	var (
		body string
		rec  = model.ArchivedRecord{Family: family, PageID: pageID}
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT body, scraped_at FROM records WHERE wiki = ? AND page_id = ?",
		string(family), pageID,
	).Scan(&body, &rec.ScrapedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting record %s/%d: %w", family, pageID, err)
	}
	if err := json.Unmarshal([]byte(body), &rec.Record); err != nil {
		return nil, fmt.Errorf("decoding record %s/%d: %w", family, pageID, err)
	}
	return &rec, nil
}

// List returns archived records, newest first. An empty family lists every
// wiki; limit <= 0 means no limit.
func (s *SQLiteStore) List(ctx context.Context, family model.GameFamily, limit int) ([]model.ArchivedRecord, error) {
	query := "SELECT wiki, page_id, body, scraped_at FROM records"
	var args []any
	if family != "" {
		query += " WHERE wiki = ?"
		args = append(args, string(family))
	}
	query += " ORDER BY scraped_at DESC, page_id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var out []model.ArchivedRecord
	for rows.Next() {
		var (
			wiki, body string
			rec        model.ArchivedRecord
		)
		if err := rows.Scan(&wiki, &rec.PageID, &body, &rec.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Family = model.GameFamily(wiki)
		if err := json.Unmarshal([]byte(body), &rec.Record); err != nil {
			return nil, fmt.Errorf("decoding record %s/%d: %w", wiki, rec.PageID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return out, nil
}

// Cleanup deletes records scraped longer ago than olderThan.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC()
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE scraped_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up records older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
