package interaction

import "time"

// moveLimiter thins out pointer moves. A move at the x of the last processed
// move is dropped; a move inside the interval is parked until the next move
// or until release.
type moveLimiter struct {
	interval time.Duration
	now      func() time.Time

	last    time.Time
	lastX   int
	pending *Point
}

func (l *moveLimiter) reset(p Point) {
	l.last = time.Time{}
	l.lastX = p.X
	l.pending = nil
}

// admit reports whether p should be processed now
func (l *moveLimiter) admit(p Point) bool {
	if p.X == l.lastX {
		l.pending = nil
		return false
	}
	now := l.now()
	if l.interval > 0 && !l.last.IsZero() && now.Sub(l.last) < l.interval {
		l.pending = &p
		return false
	}
	l.last = now
	l.lastX = p.X
	l.pending = nil
	return true
}

// flush returns the parked move, if any
func (l *moveLimiter) flush() (Point, bool) {
	if l.pending == nil {
		return Point{}, false
	}
	p := *l.pending
	l.pending = nil
	l.lastX = p.X
	return p, true
}
