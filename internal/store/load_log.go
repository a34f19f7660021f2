package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Load statuses.
const (
	LoadStatusLoading = "loading"
	LoadStatusOK      = "ok"
	LoadStatusFailed  = "failed"
)

// LoadLog one snapshot load attempt.
type LoadLog struct {
	ID           int64      `json:"id"`
	LoadID       string     `json:"loadId"`
	FilePath     string     `json:"filePath"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	Format       string     `json:"format"`
	TotalRows    int        `json:"totalRows"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// FileFingerprint returns size and sha256 of a file.
func FileFingerprint(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

// CreateLoadLog records the start of a load.
func (s *Store) CreateLoadLog(loadID, filePath string, fileSize int64, fileHash string) error {
	_, err := s.db.Exec(`
		INSERT INTO load_logs (load_id, file_path, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, ?)
	`, loadID, filePath, fileSize, fileHash, LoadStatusLoading)
	if err != nil {
		return fmt.Errorf("failed to create load log: %w", err)
	}
	return nil
}

// FinishLoadLog completes a load log.
func (s *Store) FinishLoadLog(loadID, format string, totalRows int, status, errorMessage string) error {
	res, err := s.db.Exec(`
		UPDATE load_logs SET
			format = ?,
			total_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE load_id = ?
	`, format, totalRows, status, errorMessage, loadID)
	if err != nil {
		return fmt.Errorf("failed to update load log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("load log not found: %s", loadID)
	}
	return nil
}

const loadLogColumns = `id, load_id, file_path, file_size, file_hash, format, total_rows,
	status, error_message, started_at, completed_at`

func scanLoadLog(row interface{ Scan(...any) error }) (*LoadLog, error) {
	var l LoadLog
	var completed sql.NullTime
	if err := row.Scan(&l.ID, &l.LoadID, &l.FilePath, &l.FileSize, &l.FileHash, &l.Format,
		&l.TotalRows, &l.Status, &l.ErrorMessage, &l.StartedAt, &completed); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		l.CompletedAt = &t
	}
	return &l, nil
}

// LatestLoadLog returns the most recent load, nil when none exists.
func (s *Store) LatestLoadLog() (*LoadLog, error) {
	row := s.db.QueryRow(`SELECT ` + loadLogColumns + ` FROM load_logs ORDER BY id DESC LIMIT 1`)
	l, err := scanLoadLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest load log failed: %w", err)
	}
	return l, nil
}

// ListLoadLogs returns up to limit loads, newest first.
func (s *Store) ListLoadLogs(limit int) ([]LoadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+loadLogColumns+` FROM load_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query load logs failed: %w", err)
	}
	defer rows.Close()

	out := []LoadLog{}
	for rows.Next() {
		l, err := scanLoadLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan load log failed: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load logs failed: %w", err)
	}
	return out, nil
}
