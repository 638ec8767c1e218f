package sqlite

import "time"

// TranscriptRecord represents one stored dictation session
type TranscriptRecord struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Device       string    `json:"device"`
	Backend      string    `json:"backend"`
	Model        string    `json:"model"`
	AudioPath    string    `json:"audio_path,omitempty"`
	DurationSecs float64   `json:"duration_secs"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
