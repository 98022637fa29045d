package budget

import (
	"testing"
	"time"
)

func TestClockTimeLimit(t *testing.T) {
	c := New(10, 2*time.Second, 0)

	for i := 1; i < 20; i++ {
		if c.Tick() {
			t.Fatalf("expired early at tick %d", i)
		}
	}
	if !c.Tick() {
		t.Fatal("expected expiry on tick 20")
	}
	if !c.Expired() || c.Reason() != ReasonTime {
		t.Errorf("Expired() = %v, Reason() = %q", c.Expired(), c.Reason())
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %v, want 0", c.Remaining())
	}
	if c.Tick() {
		t.Error("Tick() after expiry should not report again")
	}
	if c.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed() = %v, want 2s", c.Elapsed())
	}
}

func TestClockMoveLimit(t *testing.T) {
	c := New(30, 0, 3)

	if c.Remaining() != -1 {
		t.Errorf("Remaining() without time limit = %v, want -1", c.Remaining())
	}
	c.UseMove()
	c.UseMove()
	if c.MovesLeft() != 1 {
		t.Errorf("MovesLeft() = %d, want 1", c.MovesLeft())
	}
	if !c.UseMove() {
		t.Fatal("third move should exhaust the budget")
	}
	if c.Reason() != ReasonMoves {
		t.Errorf("Reason() = %q, want moves", c.Reason())
	}
	if c.UseMove() || c.Moves() != 3 {
		t.Error("moves after expiry should not be charged")
	}
}

func TestClockUnlimited(t *testing.T) {
	c := New(30, 0, 0)
	for i := 0; i < 10000; i++ {
		c.Tick()
		c.UseMove()
	}
	if c.Expired() {
		t.Error("unlimited clock expired")
	}
	if c.MovesLeft() != -1 {
		t.Errorf("MovesLeft() = %d, want -1", c.MovesLeft())
	}
}

func TestClockStop(t *testing.T) {
	c := New(30, time.Second, 5)
	for i := 0; i < 15; i++ {
		c.Tick()
	}
	c.UseMove()
	c.Stop()

	for i := 0; i < 100; i++ {
		c.Tick()
		c.UseMove()
	}
	if c.Expired() {
		t.Error("stopped clock should never expire")
	}
	if c.Elapsed() != 500*time.Millisecond || c.Moves() != 1 {
		t.Errorf("stopped clock kept counting: %v, %d moves", c.Elapsed(), c.Moves())
	}
	if !c.Stopped() {
		t.Error("Stopped() = false")
	}
}

func TestClockDefaults(t *testing.T) {
	c := New(0, time.Second, -4)
	limit, moves := c.Limits()
	if limit != time.Second || moves != 0 {
		t.Errorf("Limits() = %v, %d", limit, moves)
	}
}
