package ui

import (
	"testing"
	"time"
)

func TestLatch_EngageAndRelease(t *testing.T) {
	l := NewLatch(0)

	cmd := l.Engage("like:p1")
	if cmd == nil {
		t.Fatal("expected release command")
	}
	if !l.Held("like:p1") {
		t.Fatal("expected key held")
	}
	if l.Engage("like:p1") != nil {
		t.Fatal("second engage while held must return nil")
	}
	if l.Held("like:p2") {
		t.Fatal("other keys are independent")
	}

	msg, ok := cmd().(LatchReleasedMsg)
	if !ok {
		t.Fatalf("expected LatchReleasedMsg")
	}
	l.Release(msg)
	if l.Held("like:p1") {
		t.Fatal("expected key released")
	}
}

func TestLatch_StaleReleaseIgnored(t *testing.T) {
	l := NewLatch(0)

	first := l.Engage("k")().(LatchReleasedMsg)
	l.Release(first)
	l.Engage("k")

	// A duplicate delivery of the first release must not open the second hold.
	l.Release(first)
	if !l.Held("k") {
		t.Fatal("stale release opened a newer hold")
	}
}

func TestLatch_TickDelivers(t *testing.T) {
	l := NewLatch(20 * time.Millisecond)
	cmd := l.Engage("k")

	start := time.Now()
	msg, ok := cmd().(LatchReleasedMsg)
	if !ok {
		t.Fatal("expected LatchReleasedMsg")
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Errorf("release arrived too early")
	}
	l.Release(msg)
	if l.Held("k") {
		t.Fatal("expected released")
	}
}

func TestLatch_Cancel(t *testing.T) {
	l := NewLatch(time.Hour)
	l.Engage("a")
	l.Engage("b")
	l.Cancel()
	if l.Held("a") || l.Held("b") {
		t.Fatal("expected all latches open")
	}
}
