package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pixelgrove/ingest/internal/model"
)

// Compile-time check that SQLiteStore implements AssetStore.
var _ AssetStore = (*SQLiteStore)(nil)

// SQLiteStore implements AssetStore backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) an SQLite database at dsn and runs
// migrations. For in-memory use pass "file::memory:?cache=shared".
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	} else if !strings.Contains(dsn, "_journal_mode") {
		dsn += "&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(a *model.ImageAsset) error {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid asset: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	responsiveJSON, err := json.Marshal(a.ResponsiveURLs)
	if err != nil {
		return fmt.Errorf("marshal responsive urls: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO image_assets (id, title, description, alt, category, storage_key, url,
			thumbnail_url, responsive_urls, size_bytes, mime_type, priority, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Alt, string(a.Category), a.StorageKey, a.URL,
		a.ThumbnailURL, string(responsiveJSON), a.SizeBytes, a.MIMEType, a.Priority,
		boolToInt(a.Active), a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Update(id string, patch model.AssetPatch) (*model.ImageAsset, error) {
	a, err := s.FindActiveByID(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(a)
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid asset: %w", err)
	}
	a.UpdatedAt = time.Now().UTC()

	res, err := s.db.Exec(`
		UPDATE image_assets
		SET title = ?, description = ?, alt = ?, category = ?, priority = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		a.Title, a.Description, a.Alt, string(a.Category), a.Priority,
		boolToInt(a.Active), a.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	if err := checkRowsAffected(res); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM image_assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return checkRowsAffected(res)
}

func (s *SQLiteStore) FindActiveByID(id string) (*model.ImageAsset, error) {
	row := s.db.QueryRow(selectColumns+` FROM image_assets WHERE id = ? AND active = 1`, id)
	return scanAsset(row)
}

func (s *SQLiteStore) FindByID(id string) (*model.ImageAsset, error) {
	row := s.db.QueryRow(selectColumns+` FROM image_assets WHERE id = ?`, id)
	return scanAsset(row)
}

func (s *SQLiteStore) List(category model.Category, includeInactive bool, page, perPage int) ([]*model.ImageAsset, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	where := "WHERE 1=1"
	args := []interface{}{}
	if category != "" {
		where += " AND category = ?"
		args = append(args, string(category))
	}
	if !includeInactive {
		where += " AND active = 1"
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM image_assets `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := s.db.Query(selectColumns+` FROM image_assets `+where+`
		ORDER BY priority DESC, created_at DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []*model.ImageAsset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate assets: %w", err)
	}
	return assets, total, nil
}

const selectColumns = `SELECT id, title, description, alt, category, storage_key, url,
	thumbnail_url, responsive_urls, size_bytes, mime_type, priority, active, created_at, updated_at`

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row scanner) (*model.ImageAsset, error) {
	var (
		a                    model.ImageAsset
		category             string
		responsiveJSON       string
		active               int
		createdAt, updatedAt string
	)
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Alt, &category, &a.StorageKey, &a.URL,
		&a.ThumbnailURL, &responsiveJSON, &a.SizeBytes, &a.MIMEType, &a.Priority,
		&active, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan asset: %w", err)
	}

	a.Category = model.Category(category)
	a.Active = active != 0
	if err := json.Unmarshal([]byte(responsiveJSON), &a.ResponsiveURLs); err != nil {
		return nil, fmt.Errorf("unmarshal responsive urls: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
