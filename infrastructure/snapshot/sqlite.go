package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	domainPost "github.com/postdeck/domains/post"
)

// Cache persists the last good reconciliation snapshot to SQLite so a restart
// can render the calendar before the first pull completes. It is a cache, not
// a source of truth: the next successful pull overwrites it wholesale.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on", path))
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing connection (tests use ":memory:").
func NewWithDB(db *sql.DB) (*Cache, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshot_posts (
			id TEXT PRIMARY KEY,
			text_content TEXT,
			platforms TEXT,
			scheduled_time TEXT,
			image_path TEXT,
			status TEXT
		);
		CREATE TABLE IF NOT EXISTS snapshot_meta (key TEXT PRIMARY KEY, value TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Save replaces the cached snapshot with the given posts.
func (c *Cache) Save(ctx context.Context, posts []domainPost.Post) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_posts`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_posts (id, text_content, platforms, scheduled_time, image_path, status) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		names := make([]string, len(p.Platforms))
		for i, pl := range p.Platforms {
			names[i] = string(pl)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.TextContent, strings.Join(names, ","), p.ScheduledTime.UTC().Format(time.RFC3339), p.ImagePath, string(p.Status)); err != nil {
			return err
		}
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (key, value) VALUES ('saved_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, savedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the cached snapshot, scheduled time descending.
func (c *Cache) Load(ctx context.Context) ([]domainPost.Post, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, text_content, platforms, scheduled_time, image_path, status FROM snapshot_posts ORDER BY scheduled_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domainPost.Post
	for rows.Next() {
		var p domainPost.Post
		var platforms, scheduled string
		var status string
		if err := rows.Scan(&p.ID, &p.TextContent, &platforms, &scheduled, &p.ImagePath, &status); err != nil {
			return nil, err
		}
		p.Status = domainPost.Status(status)
		for _, name := range strings.Split(platforms, ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.Platforms = append(p.Platforms, domainPost.Platform(name))
			}
		}
		if t, err := time.Parse(time.RFC3339, scheduled); err == nil {
			p.ScheduledTime = t.UTC()
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// SavedAt reports when the cached snapshot was written.
func (c *Cache) SavedAt(ctx context.Context) (time.Time, bool) {
	var v string
	if err := c.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'saved_at'`).Scan(&v); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveAsync persists in the background; failures are logged only, the cache is
// best effort.
func (c *Cache) SaveAsync(posts []domainPost.Post) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Save(ctx, posts); err != nil {
			logrus.WithError(err).Warn("[SNAPSHOT] Failed to persist snapshot")
		}
	}()
}
