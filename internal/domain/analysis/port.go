package analysis

import "context"

// Remote port: the analysis capability as the client sees it. Analyze
// blocks until the transport settles; there is no client-side timeout.
type Remote interface {
	Analyze(ctx context.Context, f File) (*Result, error)
}

// Detector port: the opaque detection capability behind the server.
type Detector interface {
	Detect(ctx context.Context, fileURL string, kind Kind) (*Result, error)
}

// HistoryRepository port (server-side persistence)
type HistoryRepository interface {
	Save(ctx context.Context, rec *HistoryRecord) error
	LatestByUser(ctx context.Context, userID int64, limit int) ([]*HistoryRecord, error)
}

// ArtifactStore port (interface untuk penyimpanan media yang diupload)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}
