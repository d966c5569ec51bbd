package application

import (
	"sync"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/history"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/application/session"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
)

// State replaces the process-scoped globals of the old UI (current user,
// history array, selected file): one container with explicit lifecycle
// hooks, passed to whatever drives the workflow.
type State struct {
	mu      sync.Mutex
	user    *users.User
	History *history.Store
	Session *session.Session
}

func NewState(previewer session.Previewer) *State {
	return &State{
		History: history.New(),
		Session: session.New(previewer),
	}
}

// OnLoginSuccess starts a fresh session: empty history, empty upload.
func (s *State) OnLoginSuccess(u *users.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	s.History.Clear()
	s.Session.Reset()
}

// OnLogout drops the user and all per-session state.
func (s *State) OnLogout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.History.Clear()
	s.Session.Reset()
}

// CurrentUser returns the logged-in user, if any.
func (s *State) CurrentUser() (*users.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.user != nil
}
