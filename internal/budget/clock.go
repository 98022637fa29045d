// Package budget implements the per-attempt countdown: a wall-clock limit
// measured in fixed simulation ticks and an optional move allowance.
package budget

import "time"

// Reason says which allowance ran out.
type Reason string

const (
	ReasonNone  Reason = ""
	ReasonTime  Reason = "time"
	ReasonMoves Reason = "moves"
)

// Clock counts down one attempt. It is driven by Tick and UseMove and never
// reads the wall clock itself, so runs are reproducible.
type Clock struct {
	tickRate  int
	limit     int // ticks, 0 = unlimited
	moveLimit int // 0 = unlimited

	ticks   int
	moves   int
	stopped bool
	reason  Reason
}

// New creates a clock. timeLimit or moveLimit of zero disable that allowance.
func New(tickRate int, timeLimit time.Duration, moveLimit int) *Clock {
	if tickRate <= 0 {
		tickRate = 30
	}
	limit := 0
	if timeLimit > 0 {
		limit = int(timeLimit * time.Duration(tickRate) / time.Second)
		if limit == 0 {
			limit = 1
		}
	}
	return &Clock{
		tickRate:  tickRate,
		limit:     limit,
		moveLimit: max(0, moveLimit),
	}
}

// Tick advances the clock by one simulation tick.
// It reports true on the tick that exhausts the time allowance.
func (c *Clock) Tick() bool {
	if c.stopped || c.reason != ReasonNone {
		return false
	}
	c.ticks++
	if c.limit > 0 && c.ticks >= c.limit {
		c.reason = ReasonTime
		return true
	}
	return false
}

// UseMove charges one move. It reports true on the move that exhausts the
// move allowance.
func (c *Clock) UseMove() bool {
	if c.stopped || c.reason != ReasonNone {
		return false
	}
	c.moves++
	if c.moveLimit > 0 && c.moves >= c.moveLimit {
		c.reason = ReasonMoves
		return true
	}
	return false
}

// Stop freezes the clock, e.g. once the picture is restored.
func (c *Clock) Stop() {
	c.stopped = true
}

// Stopped reports whether Stop was called.
func (c *Clock) Stopped() bool {
	return c.stopped
}

// Expired reports whether an allowance ran out.
func (c *Clock) Expired() bool {
	return c.reason != ReasonNone
}

// Reason returns which allowance ran out, if any.
func (c *Clock) Reason() Reason {
	return c.reason
}

// Elapsed returns the simulated time spent so far.
func (c *Clock) Elapsed() time.Duration {
	return time.Duration(c.ticks) * time.Second / time.Duration(c.tickRate)
}

// Remaining returns the time left, or -1 when there is no time limit.
func (c *Clock) Remaining() time.Duration {
	if c.limit == 0 {
		return -1
	}
	left := max(0, c.limit-c.ticks)
	return time.Duration(left) * time.Second / time.Duration(c.tickRate)
}

// Moves returns how many moves have been charged.
func (c *Clock) Moves() int {
	return c.moves
}

// MovesLeft returns the moves still allowed, or -1 when unlimited.
func (c *Clock) MovesLeft() int {
	if c.moveLimit == 0 {
		return -1
	}
	return max(0, c.moveLimit-c.moves)
}

// Limits returns the configured allowances.
func (c *Clock) Limits() (time.Duration, int) {
	return time.Duration(c.limit) * time.Second / time.Duration(c.tickRate), c.moveLimit
}
