package session

import (
	"context"
	"sync"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// State of the upload session
type State int

const (
	Empty State = iota
	Selected
)

// Preview is the materialized display form of the selected file.
type Preview struct {
	DataURL string
	MIME    string
	Kind    analysis.Kind
}

// Previewer port: turns a selected file into its preview representation.
type Previewer interface {
	Materialize(ctx context.Context, f analysis.File) (Preview, error)
}

// Session holds the one currently selected media file. Selecting a file
// moves the session to Selected immediately; the preview is materialized
// in the background and may resolve later (or never, on error) without
// affecting submit eligibility.
//
// The active kind only drives the picker filter and preview widget. A
// mismatched file dropped onto the upload area is still accepted; the
// preview sniffs the real content instead.
type Session struct {
	mu        sync.Mutex
	state     State
	kind      analysis.Kind
	file      analysis.File
	preview   *Preview
	previewer Previewer
	gen       uint64 // selection generation, drops stale preview results
}

func New(previewer Previewer) *Session {
	return &Session{kind: analysis.KindImage, previewer: previewer}
}

// Kind returns the active detection kind.
func (s *Session) Kind() analysis.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// SetKind switches the detection tab and resets any selection.
func (s *Session) SetKind(k analysis.Kind) {
	s.mu.Lock()
	s.kind = k
	s.mu.Unlock()
	s.Reset()
}

// Select accepts a file (picker or drag-drop) and replaces any prior
// selection. The previous file needs no cleanup; nothing beyond the
// in-memory preview is held.
func (s *Session) Select(ctx context.Context, f analysis.File) {
	s.mu.Lock()
	s.state = Selected
	s.file = f
	s.preview = nil
	s.gen++
	gen := s.gen
	previewer := s.previewer
	s.mu.Unlock()

	if previewer == nil {
		return
	}

	// fire-and-forget: the session is already Selected
	go func() {
		p, err := previewer.Materialize(ctx, f)
		if err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen && s.state == Selected {
			s.preview = &p
		}
	}()
}

// Reset clears the held file and derived preview (tab switch, manual reset,
// logout).
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Empty
	s.file = analysis.File{}
	s.preview = nil
	s.gen++
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// File returns the selected file; ok is false in Empty.
func (s *Session) File() (analysis.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file, s.state == Selected
}

// Preview returns the materialized preview if it has resolved yet.
func (s *Session) Preview() (*Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview, s.preview != nil
}

// Eligible reports whether submit is valid. Gated on Selected only, not on
// preview completion.
func (s *Session) Eligible() bool {
	return s.State() == Selected
}
