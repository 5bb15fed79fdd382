package events

import "sync"

// ScoreSubmitted is published after the scoring API accepted a score.
type ScoreSubmitted struct {
	Game string `json:"game"`
}

// Bus delivers notifications between the views of one page. It is not shared
// across pages.
type Bus struct {
	mu       sync.RWMutex
	handlers []func(ScoreSubmitted)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h. Handlers run on the publisher's goroutine and must
// not block.
func (b *Bus) Subscribe(h func(ScoreSubmitted)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(ev ScoreSubmitted) {
	b.mu.RLock()
	handlers := make([]func(ScoreSubmitted), len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
