package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// UploadRecord is one row of the upload-history log.
type UploadRecord struct {
	ID              int64     `json:"id"`
	Filename        string    `json:"filename"`
	Status          string    `json:"status"` // "ok" or "failed"
	Error           string    `json:"error,omitempty"`
	Version         int       `json:"version"`
	Customers       int       `json:"customers"`
	MapPoints       int       `json:"map_points"`
	SkippedRows     int       `json:"skipped_rows"`
	ZeroSamples     int       `json:"zero_sample_points"`
	DuplicateMonths int       `json:"duplicate_month_warnings"`
	CreatedAt       time.Time `json:"created_at"`
}

// Upload status values
const (
	UploadStatusOK     = "ok"
	UploadStatusFailed = "failed"
)

// UploadRepository persists upload diagnostics
type UploadRepository struct {
	db *sql.DB
}

// NewUploadRepository creates a new upload repository
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Record inserts one upload attempt into the history log.
func (r *UploadRepository) Record(rec *UploadRecord) error {
	result, err := r.db.Exec(`
		INSERT INTO uploads
			(filename, status, error, version, customers, map_points,
			 skipped_rows, zero_sample_points, duplicate_month_warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Filename, rec.Status, rec.Error, rec.Version, rec.Customers,
		rec.MapPoints, rec.SkippedRows, rec.ZeroSamples, rec.DuplicateMonths,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	rec.ID, _ = result.LastInsertId()
	return nil
}

// ListRecent returns the newest upload records, newest first.
func (r *UploadRepository) ListRecent(limit int) ([]UploadRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, filename, status, COALESCE(error, ''), version, customers,
		       map_points, skipped_rows, zero_sample_points,
		       duplicate_month_warnings, created_at
		FROM uploads
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	var records []UploadRecord
	for rows.Next() {
		var rec UploadRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.Status, &rec.Error,
			&rec.Version, &rec.Customers, &rec.MapPoints, &rec.SkippedRows,
			&rec.ZeroSamples, &rec.DuplicateMonths, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
