package round

import "time"

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Timers is a set of cancellable callbacks on a simulated clock. The clock
// only moves when Advance is called, which makes pacing deterministic in
// tests and lets a reset drop every pending transition at once.
//
// Timers is not safe for concurrent use; it lives on the update loop.
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending []timer
}

// Now returns the simulated time elapsed since the set was created.
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules fn to run once d has elapsed. A non-positive d runs fn
// on the next Advance.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.pending = append(t.pending, timer{id: t.nextID, due: t.now + d, fn: fn})
	return t.nextID
}

// Cancel removes a pending callback. It reports whether the timer was
// still pending.
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback.
func (t *Timers) CancelAll() {
	t.pending = t.pending[:0]
}

// Pending returns the number of scheduled callbacks.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// Advance moves the clock forward by dt, running due callbacks in order of
// due time (ties in scheduling order). Callbacks may schedule or cancel
// other timers; newly scheduled ones fire within the same Advance if they
// fall due before its end.
func (t *Timers) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := t.now + dt
	for {
		i := t.earliest()
		if i < 0 || t.pending[i].due > target {
			break
		}
		tm := t.pending[i]
		t.pending = append(t.pending[:i], t.pending[i+1:]...)
		if tm.due > t.now {
			t.now = tm.due
		}
		tm.fn()
	}
	t.now = target
}

func (t *Timers) earliest() int {
	if len(t.pending) == 0 {
		return -1
	}
	idx := 0
	for i := range t.pending {
		p, q := t.pending[i], t.pending[idx]
		if p.due < q.due || (p.due == q.due && p.id < q.id) {
			idx = i
		}
	}
	return idx
}
