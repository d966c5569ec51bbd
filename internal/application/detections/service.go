package detections

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Service implements use-cases untuk analisis media di sisi server:
// simpan media ke artifact store → jalankan detector → lengkapi metadata →
// catat ke history. Safe for concurrent use.
type Service struct {
	Repo      domain.HistoryRepository
	Detector  domain.Detector
	Artifacts domain.ArtifactStore
	Clock     application.Clock
}

// AnalyzeCommand describes one uploaded file to analyze.
type AnalyzeCommand struct {
	UserID      int64
	FileName    string
	LocalPath   string
	Size        int64
	ContentType string
}

// Analyze runs the full server-side pipeline for one upload. The local
// file is removed once it has been pushed to the artifact store, success
// or not.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Result, error) {
	key := fmt.Sprintf("%d/%s-%s", cmd.UserID, uuid.New().String(), filepath.Base(cmd.FileName))
	url, err := s.Artifacts.UploadAndCleanup(ctx, cmd.LocalPath, key)
	if err != nil {
		os.Remove(cmd.LocalPath)
		return nil, fmt.Errorf("store media: %w", err)
	}

	kind := domain.KindOfMIME(cmd.ContentType)
	res, err := s.Detector.Detect(ctx, url, kind)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	now := s.Clock.Now()
	out := *res
	out.FileName = cmd.FileName
	out.FileSize = fmt.Sprintf("%.2f KB", float64(cmd.Size)/1024)
	out.FileType = cmd.ContentType
	out.Timestamp = now.Format(domain.TimestampLayout)

	rec := &domain.HistoryRecord{
		UserID:     cmd.UserID,
		FileName:   out.FileName,
		FileSize:   out.FileSize,
		FileType:   out.FileType,
		IsAI:       out.IsAI,
		Confidence: float64(out.Confidence),
		Verdict:    out.Verdict,
		Timestamp:  now,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	return &out, nil
}

// History ambil N record terakhir milik user
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.LatestByUser(ctx, userID, limit)
}
