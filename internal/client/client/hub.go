package client

import (
	"sync"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// authHub fans auth events out to subscribers. Each subscriber has its own
// queue and goroutine, so handlers run in emission order without blocking
// the emitter.
type authHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	handler func(models.AuthEvent)

	mu       sync.Mutex
	queue    []models.AuthEvent
	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newAuthHub() *authHub {
	return &authHub{subs: map[int]*subscriber{}}
}

func (h *authHub) subscribe(handler func(models.AuthEvent)) func() {
	s := &subscriber{
		handler: handler,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.run()

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = s
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			s.stop()
		})
	}
}

func (h *authHub) emit(ev models.AuthEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		s.push(ev)
	}
}

func (h *authHub) close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = map[int]*subscriber{}
	h.mu.Unlock()

	for _, s := range subs {
		s.stop()
	}
}

func (s *subscriber) push(ev models.AuthEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			ev := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			select {
			case <-s.done:
				return
			default:
			}
			s.handler(ev)
		}
	}
}

// stop does not wait for a handler that is running, so a handler may
// unsubscribe itself.
func (s *subscriber) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
