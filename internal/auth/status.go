package auth

import (
	"context"
	"log"
	"sync"

	"github.com/thesrcielos/ArcadeArchive/internal/scoreapi"
)

// StatusView is the navigation login/logout control present on every page.
type StatusView struct {
	api      scoreapi.API
	status   scoreapi.StatusSource
	onChange func()

	mu          sync.Mutex
	loggedIn    bool
	confirmOpen bool
}

func NewStatusView(api scoreapi.API, status scoreapi.StatusSource, onChange func()) *StatusView {
	return &StatusView{
		api:      api,
		status:   status,
		onChange: onChange,
	}
}

func (s *StatusView) Init(ctx context.Context) {
	loggedIn := s.status.LoggedIn(ctx)
	s.mu.Lock()
	s.loggedIn = loggedIn
	s.mu.Unlock()
	s.changed()
}

func (s *StatusView) OpenLogout() {
	s.setConfirm(true)
}

func (s *StatusView) CancelLogout() {
	s.setConfirm(false)
}

// ConfirmLogout closes the confirmation dialog and logs the visitor out.
func (s *StatusView) ConfirmLogout(ctx context.Context) Outcome {
	s.setConfirm(false)
	if err := s.api.Logout(ctx); err != nil {
		if scoreapi.IsTransport(err) {
			log.Println("Logout request failed:", err)
			return Outcome{Alert: "Could not connect to the server to log out."}
		}
		return Outcome{Alert: "Logout failed. Please try again."}
	}
	return Outcome{Reload: true}
}

func (s *StatusView) Snapshot() NavSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NavSnapshot{LoggedIn: s.loggedIn, ConfirmOpen: s.confirmOpen}
}

func (s *StatusView) setConfirm(open bool) {
	s.mu.Lock()
	if s.confirmOpen == open {
		s.mu.Unlock()
		return
	}
	s.confirmOpen = open
	s.mu.Unlock()
	s.changed()
}

func (s *StatusView) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
