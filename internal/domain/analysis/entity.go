package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enum: media kind under detection
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Verdict labels
const (
	VerdictAI   = "AI Generated"
	VerdictReal = "Real/Human Created"
)

// TimestampLayout matches the locale-style capture time the UI shows
// (e.g. "1/2/2026, 3:04:05 PM").
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Score is a 0-100 value that the remote service emits either as a JSON
// number or as a quoted string ("73.2"). Decode both.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", raw, err)
	}
	*s = Score(v)
	return nil
}

// Indicator is one named sub-signal contributing to the verdict.
// Immutable once produced.
type Indicator struct {
	Name        string `json:"name"`
	Score       Score  `json:"score"`
	Suspicious  bool   `json:"suspicious"`
	Description string `json:"description"`
}

// Result is the normalized outcome of one completed analysis (remote or
// demo). Value type, created once, never mutated.
type Result struct {
	IsAI       bool        `json:"isAI"`
	Confidence Score       `json:"confidence"`
	FileName   string      `json:"fileName"`
	FileSize   string      `json:"fileSize"`
	FileType   string      `json:"fileType"`
	Timestamp  string      `json:"timestamp"`
	Indicators []Indicator `json:"indicators"`
	Verdict    string      `json:"verdict"`
	Details    string      `json:"details"`
}

// File is a selected media file as seen by the upload workflow.
type File struct {
	Name string
	Path string
	Size int64
	MIME string
}

// HistoryRecord is the server-side persisted trace of an analysis
// (mirrors the analysis_history table).
type HistoryRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	FileName   string    `json:"file_name"`
	FileSize   string    `json:"file_size"`
	FileType   string    `json:"file_type"`
	IsAI       bool      `json:"is_ai"`
	Confidence float64   `json:"confidence"`
	Verdict    string    `json:"verdict"`
	Timestamp  time.Time `json:"timestamp"`
}

// KindOfMIME maps a MIME type onto the preview/detection kind. Anything
// that is not image/* is treated as playable video.
func KindOfMIME(mime string) Kind {
	if strings.HasPrefix(mime, "image/") {
		return KindImage
	}
	return KindVideo
}

// DecodeResult parses a result payload, tolerating quoted scores.
func DecodeResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
