package state

import "time"

// toastLifetime is how long the oldest toast stays visible
const toastLifetime = 3000 * time.Millisecond

// AddToast queues a transient notification. The queue drains in FIFO order
// through a single shared timer: it is armed when the queue becomes
// non-empty and re-armed after each expiry, so inserting a toast while one
// is already pending does not extend the older toast's life.
func (s *Store) AddToast(message string, toastType ToastType) {
	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{
		ID:      s.now().UnixMilli(),
		Message: message,
		Type:    toastType,
	})
	if s.toastTimer == nil {
		s.toastTimer = time.AfterFunc(toastLifetime, s.expireToast)
	}
	s.mu.Unlock()

	s.notify()
}

// Toasts returns a copy of the pending toast queue, oldest first
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Toast(nil), s.toasts...)
}

// expireToast removes the oldest toast and re-arms the timer while the
// queue is non-empty
func (s *Store) expireToast() {
	s.mu.Lock()
	if len(s.toasts) > 0 {
		s.toasts = s.toasts[1:]
	}
	if len(s.toasts) > 0 {
		s.toastTimer = time.AfterFunc(toastLifetime, s.expireToast)
	} else {
		s.toastTimer = nil
	}
	s.mu.Unlock()

	s.notify()
}
