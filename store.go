package metaengine

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"
)

// Override field keys as stored in the overrides table, one row per
// authored field. Blank fields are never stored.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldOGTitle     = "og_title"
	fieldOGDesc      = "og_description"
	fieldOGImage     = "og_image"
	fieldTwTitle     = "twitter_title"
	fieldTwDesc      = "twitter_description"
	fieldTwImage     = "twitter_image"
)

// Store wraps a SQLite database and provides CRUD operations for content
// items, their metadata override fields, uploaded images, and site settings.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS items (
    slug TEXT PRIMARY KEY,
    type TEXT NOT NULL DEFAULT 'post',
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    body TEXT NOT NULL,
    thumbnail TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS overrides (
    slug TEXT NOT NULL,
    field TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (slug, field)
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

const itemColumns = `slug, type, title, date, body, thumbnail, updated_at, published`

func scanItem(scan func(dest ...any) error) (ContentItem, error) {
	var slug, typ, title, date, body, thumbnail, updatedAt string
	var published int
	if err := scan(&slug, &typ, &title, &date, &body, &thumbnail, &updatedAt, &published); err != nil {
		return ContentItem{}, err
	}
	item := ContentItem{
		Slug:      slug,
		Type:      typ,
		Title:     title,
		Date:      date,
		Body:      body,
		Thumbnail: thumbnail,
		Published: published == 1,
	}
	if updatedAt != "" {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			item.Updated = t
		}
	}
	return item, nil
}

// ListItems returns all published items ordered by date descending.
// If contentType is non-empty, results are filtered to that type.
func (s *Store) ListItems(contentType string) ([]ContentItem, error) {
	var rows *sql.Rows
	var err error
	if contentType == "" {
		rows, err = s.db.Query(`SELECT ` + itemColumns + ` FROM items WHERE published = 1 ORDER BY date DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+itemColumns+` FROM items WHERE published = 1 AND type = ? ORDER BY date DESC`, contentType)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListAllItems returns every item (published and drafts) ordered by date descending.
func (s *Store) ListAllItems() ([]ContentItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemColumns + ` FROM items ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns a single published item by slug.
func (s *Store) GetItem(slug string) (ContentItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE slug = ? AND published = 1`, slug)
	return scanItem(row.Scan)
}

// GetItemAny returns an item by slug regardless of published status (for admin).
func (s *Store) GetItemAny(slug string) (ContentItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE slug = ?`, slug)
	return scanItem(row.Scan)
}

// SaveItem upserts a content item. An empty type defaults to DefaultType and
// a zero Updated is stored as empty.
func (s *Store) SaveItem(item ContentItem) error {
	typ := item.Type
	if typ == "" {
		typ = DefaultType
	}
	updatedAt := ""
	if !item.Updated.IsZero() {
		updatedAt = item.Updated.UTC().Format(time.RFC3339)
	}
	published := 0
	if item.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO items (slug, type, title, date, body, thumbnail, updated_at, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Slug, typ, item.Title, item.Date, item.Body, item.Thumbnail, updatedAt, published)
	return err
}

// DeleteItem removes an item by slug together with its override rows.
func (s *Store) DeleteItem(slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM overrides WHERE slug = ?`, slug); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM items WHERE slug = ?`, slug); err != nil {
		return err
	}
	return tx.Commit()
}

func setOverrideField(ov *Overrides, field, value string) {
	switch field {
	case fieldTitle:
		ov.Title = value
	case fieldDescription:
		ov.Description = value
	case fieldOGTitle:
		ov.OGTitle = value
	case fieldOGDesc:
		ov.OGDescription = value
	case fieldOGImage:
		ov.OGImage = value
	case fieldTwTitle:
		ov.TwitterTitle = value
	case fieldTwDesc:
		ov.TwitterDescription = value
	case fieldTwImage:
		ov.TwitterImage = value
	}
}

// GetOverrides returns the stored override fields for an item. Items with no
// stored fields get a zero Overrides; that is not an error.
func (s *Store) GetOverrides(slug string) (Overrides, error) {
	rows, err := s.db.Query(`SELECT field, value FROM overrides WHERE slug = ?`, slug)
	if err != nil {
		return Overrides{}, err
	}
	defer rows.Close()

	var ov Overrides
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return Overrides{}, err
		}
		setOverrideField(&ov, field, value)
	}
	return ov, rows.Err()
}

// ListOverrides returns the stored override fields for every item, keyed by slug.
func (s *Store) ListOverrides() (map[string]Overrides, error) {
	rows, err := s.db.Query(`SELECT slug, field, value FROM overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Overrides)
	for rows.Next() {
		var slug, field, value string
		if err := rows.Scan(&slug, &field, &value); err != nil {
			return nil, err
		}
		ov := out[slug]
		setOverrideField(&ov, field, value)
		out[slug] = ov
	}
	return out, rows.Err()
}

// SaveOverrides replaces the stored override fields for an item. Blank fields
// are dropped rather than stored, so the resolver's fallback chain sees them
// as absent.
func (s *Store) SaveOverrides(slug string, ov Overrides) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM overrides WHERE slug = ?`, slug); err != nil {
		return err
	}
	pairs := []struct{ field, value string }{
		{fieldTitle, ov.Title},
		{fieldDescription, ov.Description},
		{fieldOGTitle, ov.OGTitle},
		{fieldOGDesc, ov.OGDescription},
		{fieldOGImage, ov.OGImage},
		{fieldTwTitle, ov.TwitterTitle},
		{fieldTwDesc, ov.TwitterDescription},
		{fieldTwImage, ov.TwitterImage},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO overrides (slug, field, value) VALUES (?, ?, ?)`, slug, p.field, p.value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage upserts image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// GetSetting returns a site-level setting value, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores a site-level setting value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}
