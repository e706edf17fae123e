package ai

import "time"

// pendingWait is a deferred "advance patrol" action. At most one is
// outstanding per agent; it fires once its deadline on the agent clock
// passes, whatever state the agent is in by then.
type pendingWait struct {
	deadline time.Duration
	armed    bool
}

// schedule arms the wait to fire at now+delay.
// Returns false if a wait is already outstanding; the existing deadline is kept.
func (w *pendingWait) schedule(now, delay time.Duration) bool {
	if w.armed {
		return false
	}
	w.deadline = now + delay
	w.armed = true
	return true
}

// due reports whether the wait should fire at now and disarms it if so.
func (w *pendingWait) due(now time.Duration) bool {
	if !w.armed || now < w.deadline {
		return false
	}
	w.armed = false
	return true
}

// clear drops the outstanding wait without firing it.
func (w *pendingWait) clear() {
	w.armed = false
	w.deadline = 0
}
