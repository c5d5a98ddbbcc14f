package session

import "sync/atomic"

// Listener is notified with a copy of session after every mutation
type Listener func(session Session)

// Subscribe registers listener, returned function cancels subscription
func (s *Store) Subscribe(listener Listener) func() {
	id := atomic.AddUint64(&s.listenerSeq, 1)
	s.listeners.Put(id, listener)
	return func() {
		s.listeners.Delete(id)
	}
}

func (s *Store) notify(session Session) {
	for _, listener := range s.listeners.Values() {
		listener(session.clone())
	}
}
