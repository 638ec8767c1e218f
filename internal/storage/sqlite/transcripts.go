package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yegors/scribe/pkg/logger"
)

// TranscriptStorage handles storage of transcript records
type TranscriptStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// New opens the history database at path, creating the file and its
// parent directory on first use
func New(path string, log *logger.Logger) (*TranscriptStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	storage := &TranscriptStorage{
		db:     db,
		logger: log.Named("history"),
	}

	if err := storage.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize transcript storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *TranscriptStorage) initDB() error {
	// Create transcripts table
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			device TEXT NOT NULL DEFAULT '',
			backend TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			audio_path TEXT NOT NULL DEFAULT '',
			duration_secs REAL NOT NULL DEFAULT 0,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transcripts table: %w", err)
	}

	// Create indexes for performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transcripts_created_at ON transcripts(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_transcripts_session_id ON transcripts(session_id)`,
	}

	for _, indexSQL := range indexes {
		_, err = s.db.Exec(indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create transcript index: %w", err)
		}
	}

	return nil
}

// Store stores a transcript record and returns its ID
func (s *TranscriptStorage) Store(record *TranscriptRecord) (int64, error) {
	// Insert record
	result, err := s.db.Exec(
		`INSERT INTO transcripts
		(session_id, device, backend, model, audio_path, duration_secs, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.SessionID,
		record.Device,
		record.Backend,
		record.Model,
		record.AudioPath,
		record.DurationSecs,
		record.Content,
		record.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transcript: %w", err)
	}

	// Get ID
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	s.logger.Debug("Stored transcript",
		logger.Int64("id", id),
		logger.String("session_id", record.SessionID),
	)

	return id, nil
}

// GetRecent returns the most recent transcripts, newest first
func (s *TranscriptStorage) GetRecent(limit int) ([]*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, device, backend, model, audio_path, duration_secs, content, created_at
		FROM transcripts
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transcripts: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptRows(rows)
}

// GetByID returns the transcript with the given ID
func (s *TranscriptStorage) GetByID(id int64) (*TranscriptRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, device, backend, model, audio_path, duration_secs, content, created_at
		FROM transcripts
		WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript by ID: %w", err)
	}
	defer rows.Close()

	records, err := s.scanTranscriptRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no transcript with ID %d", id)
	}
	return records[0], nil
}

// GetLatest returns the most recently stored transcript
func (s *TranscriptStorage) GetLatest() (*TranscriptRecord, error) {
	records, err := s.GetRecent(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no transcripts stored yet")
	}
	return records[0], nil
}

// Close closes the underlying database
func (s *TranscriptStorage) Close() error {
	return s.db.Close()
}

// scanTranscriptRows scans database rows into TranscriptRecord structs
func (s *TranscriptStorage) scanTranscriptRows(rows *sql.Rows) ([]*TranscriptRecord, error) {
	var records []*TranscriptRecord
	for rows.Next() {
		var record TranscriptRecord
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Device,
			&record.Backend,
			&record.Model,
			&record.AudioPath,
			&record.DurationSecs,
			&record.Content,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}

		// Parse timestamp
		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transcripts: %w", err)
	}

	return records, nil
}
