package pie

import (
	"math"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestClockTweenProgress(t *testing.T) {
	clock := clockz.NewFakeClock()
	tweener := NewClockTweener(clock, EaseLinear)

	tw := tweener.Tween(0, 10, 100*time.Millisecond)
	if got := tw.Value(); got != 0 {
		t.Errorf("initial value = %v, want 0", got)
	}
	if tw.Done() {
		t.Error("tween reported done before any time passed")
	}

	clock.Advance(50 * time.Millisecond)
	if got := tw.Value(); math.Abs(got-5) > epsilon {
		t.Errorf("midpoint value = %v, want 5", got)
	}

	clock.Advance(50 * time.Millisecond)
	if got := tw.Value(); got != 10 {
		t.Errorf("final value = %v, want 10", got)
	}
	if !tw.Done() {
		t.Error("tween not done after full duration")
	}
	if got := tw.Target(); got != 10 {
		t.Errorf("Target() = %v, want 10", got)
	}
}

func TestClockTweenClampsPastDuration(t *testing.T) {
	clock := clockz.NewFakeClock()
	tweener := NewClockTweener(clock, EaseLinear)

	tw := tweener.Tween(2, 4, 10*time.Millisecond)
	clock.Advance(time.Second)
	if got := tw.Value(); got != 4 {
		t.Errorf("overshoot value = %v, want clamped 4", got)
	}
}

func TestClockTweenZeroDuration(t *testing.T) {
	clock := clockz.NewFakeClock()
	tweener := NewClockTweener(clock, nil)

	tw := tweener.Tween(1, 7, 0)
	if got := tw.Value(); got != 7 {
		t.Errorf("zero duration value = %v, want 7 immediately", got)
	}
	if !tw.Done() {
		t.Error("zero duration tween must be done immediately")
	}
}

func TestEaseInOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutQuad(tt.in); math.Abs(got-tt.want) > epsilon {
			t.Errorf("EaseInOutQuad(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseDefaultsToInOutQuad(t *testing.T) {
	clock := clockz.NewFakeClock()
	tweener := NewClockTweener(clock, nil)

	tw := tweener.Tween(0, 1, 100*time.Millisecond)
	clock.Advance(25 * time.Millisecond)
	if got := tw.Value(); math.Abs(got-0.125) > epsilon {
		t.Errorf("quarter-way value = %v, want eased 0.125", got)
	}
}
