package analysis

import (
	"context"
	"time"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/history"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/session"
	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Loading port: the indicator shown while a submission is in flight.
// Show/Hide are paired exactly once per submission, Hide on every
// settlement path.
type Loading interface {
	Show()
	Hide()
}

// NopLoading for headless callers.
type NopLoading struct{}

func (NopLoading) Show() {}
func (NopLoading) Hide() {}

// DemoKind selects which hardcoded demo payload to synthesize.
type DemoKind string

const (
	DemoAI   DemoKind = "ai"
	DemoReal DemoKind = "real"
)

// DemoDelay is the simulated analysis latency of the demo path.
const DemoDelay = 2 * time.Second

// Service orchestrates submissions: remote call or synthetic demo, both
// normalized into one result shape and inserted into history on success.
//
// Overlapping submissions are allowed; completions land in history in
// completion order, not submission order.
type Service struct {
	Remote  domain.Remote
	History *history.Store
	Loading Loading
	Clock   application.Clock
	Sleeper application.Sleeper
}

// Submit sends the file to the remote analysis capability. Failures never
// mutate history; the error is either a *RemoteError (rejection, message
// preserved) or wraps ErrServiceUnavailable (transport failure).
func (s *Service) Submit(ctx context.Context, f domain.File) (*domain.Result, error) {
	s.Loading.Show()
	defer s.Loading.Hide()

	res, err := s.Remote.Analyze(ctx, f)
	if err != nil {
		return nil, err
	}

	s.History.InsertFront(res)
	return res, nil
}

// SubmitSelected submits the session's current file. In Empty it is a
// silent no-op, not an error.
func (s *Service) SubmitSelected(ctx context.Context, sess *session.Session) (*domain.Result, error) {
	f, ok := sess.File()
	if !ok {
		return nil, nil
	}
	return s.Submit(ctx, f)
}

// SubmitDemo synthesizes a fixed result without any network call, after the
// simulated processing delay. The demo path cannot fail.
func (s *Service) SubmitDemo(ctx context.Context, kind DemoKind) *domain.Result {
	s.Loading.Show()
	defer s.Loading.Hide()

	s.Sleeper.Sleep(ctx, DemoDelay)

	res := demoResult(kind, s.Clock.Now())
	s.History.InsertFront(res)
	return res
}

func demoResult(kind DemoKind, now time.Time) *domain.Result {
	isAI := kind == DemoAI

	r := &domain.Result{
		IsAI:      isAI,
		FileSize:  "342.56 KB",
		FileType:  "image/jpeg",
		Timestamp: now.Format(domain.TimestampLayout),
	}

	if isAI {
		r.Confidence = 92.3
		r.FileName = "ai_generated_landscape.jpg"
		r.Verdict = domain.VerdictAI
		r.Details = "Strong AI signatures detected."
		r.Indicators = []domain.Indicator{
			{Name: "Pixel Patterns", Score: 94.2, Suspicious: true, Description: "Unusual patterns detected"},
			{Name: "Noise Analysis", Score: 89.8, Suspicious: true, Description: "AI noise signature"},
			{Name: "Artifact Detection", Score: 91.5, Suspicious: true, Description: "Generation artifacts found"},
			{Name: "Color Distribution", Score: 85.3, Suspicious: true, Description: "Unnatural colors"},
		}
		return r
	}

	r.Confidence = 88.7
	r.FileName = "real_photograph.jpg"
	r.Verdict = domain.VerdictReal
	r.Details = "Natural characteristics present."
	r.Indicators = []domain.Indicator{
		{Name: "Pixel Patterns", Score: 42.1, Suspicious: false, Description: "Natural patterns"},
		{Name: "Noise Analysis", Score: 38.6, Suspicious: false, Description: "Camera noise present"},
		{Name: "Artifact Detection", Score: 35.9, Suspicious: false, Description: "No artifacts"},
		{Name: "Color Distribution", Score: 51.2, Suspicious: false, Description: "Natural colors"},
	}
	return r
}
