package scoreapi

import (
	"context"
	"log"
	"sync"
)

// StatusSource answers whether the current visitor is logged in.
type StatusSource interface {
	LoggedIn(ctx context.Context) bool
}

// StatusFunc adapts a plain function to StatusSource.
type StatusFunc func(ctx context.Context) bool

func (f StatusFunc) LoggedIn(ctx context.Context) bool {
	return f(ctx)
}

// StatusCache fetches the login status once and serves the result afterwards.
// A failed fetch counts as guest.
type StatusCache struct {
	api      API
	once     sync.Once
	loggedIn bool
}

func NewStatusCache(api API) *StatusCache {
	return &StatusCache{api: api}
}

func (s *StatusCache) LoggedIn(ctx context.Context) bool {
	s.once.Do(func() {
		status, err := s.api.Status(ctx)
		if err != nil {
			log.Println("Could not fetch login status:", err)
			return
		}
		s.loggedIn = status.LoggedIn
	})
	return s.loggedIn
}
