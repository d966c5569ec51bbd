package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// blockingPreviewer resolves only when released, to observe the session
// state while materialization is still pending.
type blockingPreviewer struct {
	mu       sync.Mutex
	release  chan struct{}
	calls    int
	lastFile analysis.File
	fail     bool
}

func newBlockingPreviewer() *blockingPreviewer {
	return &blockingPreviewer{release: make(chan struct{})}
}

func (p *blockingPreviewer) Materialize(ctx context.Context, f analysis.File) (Preview, error) {
	p.mu.Lock()
	p.calls++
	p.lastFile = f
	fail := p.fail
	p.mu.Unlock()

	<-p.release
	if fail {
		return Preview{}, errors.New("read failed")
	}
	return Preview{DataURL: "data:" + f.MIME + ";base64,xxxx", MIME: f.MIME, Kind: analysis.KindOfMIME(f.MIME)}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSession_EmptyIsNotEligible(t *testing.T) {
	s := New(nil)
	if s.State() != Empty {
		t.Fatalf("new session state = %v, want Empty", s.State())
	}
	if s.Eligible() {
		t.Error("empty session must not be submit-eligible")
	}
	if _, ok := s.File(); ok {
		t.Error("empty session returned a file")
	}
}

func TestSession_SelectedBeforePreviewResolves(t *testing.T) {
	p := newBlockingPreviewer()
	s := New(p)

	s.Select(context.Background(), analysis.File{Name: "photo.jpg", MIME: "image/jpeg"})

	// preview still pending, submit already eligible
	if !s.Eligible() {
		t.Error("session must be eligible before preview resolves")
	}
	if _, ok := s.Preview(); ok {
		t.Error("preview resolved before the previewer returned")
	}

	close(p.release)
	waitFor(t, func() bool { _, ok := s.Preview(); return ok })

	pv, _ := s.Preview()
	if pv.Kind != analysis.KindImage {
		t.Errorf("preview kind = %v, want image", pv.Kind)
	}
}

func TestSession_MismatchedDropIsAcceptedAsVideo(t *testing.T) {
	p := newBlockingPreviewer()
	close(p.release)
	s := New(p) // image tab active

	s.Select(context.Background(), analysis.File{Name: "clip.mp4", MIME: "video/mp4"})

	if !s.Eligible() {
		t.Error("mismatched file must still be accepted")
	}
	waitFor(t, func() bool { _, ok := s.Preview(); return ok })
	pv, _ := s.Preview()
	if pv.Kind != analysis.KindVideo {
		t.Errorf("non-image content must preview as video, got %v", pv.Kind)
	}
}

func TestSession_ReplaceSelectionDiscardsStalePreview(t *testing.T) {
	p := newBlockingPreviewer()
	s := New(p)

	s.Select(context.Background(), analysis.File{Name: "old.jpg", MIME: "image/jpeg"})
	s.Select(context.Background(), analysis.File{Name: "new.jpg", MIME: "image/png"})

	close(p.release)
	waitFor(t, func() bool { _, ok := s.Preview(); return ok })

	f, ok := s.File()
	if !ok || f.Name != "new.jpg" {
		t.Errorf("selected file = %v, want new.jpg", f.Name)
	}
	// wait until both goroutines have settled, then the preview must be
	// the second file's
	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.calls == 2
	})
	pv, _ := s.Preview()
	if pv.MIME != "image/png" {
		t.Errorf("stale preview survived replacement: %q", pv.MIME)
	}
}

func TestSession_ResetClearsFileAndPreview(t *testing.T) {
	p := newBlockingPreviewer()
	s := New(p)

	s.Select(context.Background(), analysis.File{Name: "photo.jpg", MIME: "image/jpeg"})
	s.Reset()

	if s.Eligible() {
		t.Error("reset session must not be eligible")
	}

	// a preview resolving after Reset must be dropped
	close(p.release)
	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Preview(); ok {
		t.Error("preview applied after reset")
	}
}

func TestSession_PreviewFailureLeavesSelectionIntact(t *testing.T) {
	p := newBlockingPreviewer()
	p.fail = true
	s := New(p)

	s.Select(context.Background(), analysis.File{Name: "photo.jpg", MIME: "image/jpeg"})
	close(p.release)
	time.Sleep(20 * time.Millisecond)

	if !s.Eligible() {
		t.Error("preview failure must not affect eligibility")
	}
	if _, ok := s.Preview(); ok {
		t.Error("failed materialization produced a preview")
	}
}

func TestSession_SetKindResets(t *testing.T) {
	s := New(nil)
	s.Select(context.Background(), analysis.File{Name: "photo.jpg", MIME: "image/jpeg"})

	s.SetKind(analysis.KindVideo)

	if s.Kind() != analysis.KindVideo {
		t.Errorf("kind = %v, want video", s.Kind())
	}
	if s.Eligible() {
		t.Error("tab switch must clear the selection")
	}
}
