package universe

import (
	"testing"
	"time"
)

func TestRunnerStopsAfterMaxWeeks(t *testing.T) {
	u := newTestUniverse()
	r := NewRunner(u, time.Millisecond)
	r.MaxWeeks = 5

	calls := 0
	r.OnWeek = func(week int, events []Event) {
		calls++
		if week != u.AbsWeek {
			t.Errorf("callback week %d, universe at %d", week, u.AbsWeek)
		}
	}

	r.Run()

	if u.AbsWeek != 5 {
		t.Fatalf("AbsWeek = %d, want 5", u.AbsWeek)
	}
	if calls != 5 {
		t.Fatalf("OnWeek called %d times, want 5", calls)
	}
	if r.Running() {
		t.Fatalf("runner still marked running")
	}
}

func TestRunnerDefaultsInterval(t *testing.T) {
	r := NewRunner(newTestUniverse(), 0)
	if r.Interval != time.Second {
		t.Fatalf("interval %v, want 1s fallback", r.Interval)
	}
	if r.Speed() != 1 {
		t.Fatalf("speed %v, want 1", r.Speed())
	}
}

func TestRunnerSetSpeedPausesAndResumes(t *testing.T) {
	r := NewRunner(newTestUniverse(), time.Millisecond)
	r.SetSpeed(0)
	if r.Speed() != 0 {
		t.Fatalf("speed %v after pause, want 0", r.Speed())
	}
	r.SetSpeed(4)
	if r.Speed() != 4 {
		t.Fatalf("speed %v after resume, want 4", r.Speed())
	}
}
