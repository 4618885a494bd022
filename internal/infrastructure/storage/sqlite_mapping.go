package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

// SQLiteStore SQLite asosidagi mapping va run tarixlari store.
// repository.MappingRepository va repository.RunRepository ni implement qiladi.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore SQLite storeni ochish va schemani yaratish
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}

	if err := createSchema(db); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS product_type_tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_type TEXT UNIQUE NOT NULL,
	tags TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS sync_runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	scanned INTEGER NOT NULL,
	matched INTEGER NOT NULL,
	updated INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// Upsert mapping qo'shish yoki yangilash (updated_at yangilanadi)
func (s *SQLiteStore) Upsert(ctx context.Context, productType, tags string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO product_type_tags (product_type, tags) VALUES (?, ?)
ON CONFLICT(product_type) DO UPDATE SET tags = excluded.tags, updated_at = CURRENT_TIMESTAMP`,
		productType, tags)
	return err
}

// Remove mappingni o'chirish; o'chirilgan bo'lsa true qaytaradi
func (s *SQLiteStore) Remove(ctx context.Context, productType string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM product_type_tags WHERE product_type = ?`, productType)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// List barcha mappinglarni product_type bo'yicha tartiblab olish
func (s *SQLiteStore) List(ctx context.Context) ([]entity.TypeTagMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, product_type, tags, created_at, updated_at
FROM product_type_tags
ORDER BY product_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []entity.TypeTagMapping
	for rows.Next() {
		var m entity.TypeTagMapping
		if err := rows.Scan(&m.ID, &m.ProductType, &m.Tags, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// LoadMappings mappinglarni parse qilingan holda olish (tur -> teglar)
func (s *SQLiteStore) LoadMappings(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT product_type, tags FROM product_type_tags`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mappings := make(map[string][]string)
	for rows.Next() {
		var m entity.TypeTagMapping
		if err := rows.Scan(&m.ProductType, &m.Tags); err != nil {
			return nil, err
		}
		mappings[m.ProductType] = m.TagList()
	}
	return mappings, rows.Err()
}

// BulkImport qatorlarni ommaviy yuklash; bo'sh maydonli qatorlar skip qilinadi
func (s *SQLiteStore) BulkImport(ctx context.Context, importRows []entity.MappingRow) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range importRows {
		productType := strings.TrimSpace(row.ProductType)
		tags := strings.TrimSpace(row.Tags)
		if productType == "" || tags == "" {
			continue
		}

		_, err := tx.ExecContext(ctx, `
INSERT INTO product_type_tags (product_type, tags) VALUES (?, ?)
ON CONFLICT(product_type) DO UPDATE SET tags = excluded.tags, updated_at = CURRENT_TIMESTAMP`,
			productType, tags)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// Count mappinglar sonini olish
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_type_tags`).Scan(&count)
	return count, err
}

// LogRun run natijasini saqlash
func (s *SQLiteStore) LogRun(ctx context.Context, report entity.SyncReport) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sync_runs (id, mode, scanned, matched, updated, failed, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Mode, report.Scanned, report.Matched,
		report.Updated, report.Failed, report.StartedAt, report.FinishedAt)
	return err
}

// RecentRuns so'nggi runlarni olish (eng yangisi birinchi)
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]entity.SyncReport, error) {
	query := `
SELECT id, mode, scanned, matched, updated, failed, started_at, finished_at
FROM sync_runs
ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []entity.SyncReport
	for rows.Next() {
		var r entity.SyncReport
		var started, finished time.Time
		if err := rows.Scan(&r.RunID, &r.Mode, &r.Scanned, &r.Matched, &r.Updated, &r.Failed, &started, &finished); err != nil {
			return nil, err
		}
		r.StartedAt = started
		r.FinishedAt = finished
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Close db ni yopish
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
