package engine

// Clock numbers presses for one scheduler.
//
// The first call to Next returns 1. Unlike a wall clock it never depends on
// timing, so replaying the same presses yields the same numbers.
//
// Clock is not safe for concurrent use; it belongs to the scheduler's loop.
type Clock struct {
	seq int64
}

// NewClock creates a clock positioned before press 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose next press is start+1.
func NewClockAt(start int64) *Clock {
	return &Clock{seq: start}
}

// Next advances to and returns the next press number.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the last press number handed out, 0 before any press.
func (c *Clock) Current() int64 {
	return c.seq
}

// Reset rewinds the clock to before press 1.
func (c *Clock) Reset() {
	c.seq = 0
}
