// Package event provides typed change signals used in place of
// property-name based change notifications.
package event

import "sync"

// Signal fans a "something changed" notification out to its subscribers.
// Subscribers run synchronously, in subscription order, on the goroutine
// that calls Emit.
type Signal struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a function that removes it again.
// The returned cancel function is safe to call more than once.
func (s *Signal) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Emit notifies every current subscriber.
func (s *Signal) Emit() {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// Len returns the number of current subscribers.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Signal) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
