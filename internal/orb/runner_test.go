package orb

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRunner(length time.Duration, spawnEvery, tickEvery time.Duration) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		round:  NewRound(Area{W: 20, H: 8}, length, rand.New(rand.NewPCG(3, 4))),
		now:    time.Now,
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go r.loop(ctx, spawnEvery, tickEvery)
	return r
}

func TestRunnerEndsAndClosesEvents(t *testing.T) {
	r := newTestRunner(2*time.Second, 5*time.Millisecond, 20*time.Millisecond)

	var spawned, ticks int
	var ended *Result
	timeout := time.After(5 * time.Second)
	for ended == nil {
		select {
		case ev, ok := <-r.Events():
			if !ok {
				t.Fatalf("events closed before EventEnded")
			}
			switch ev.Kind {
			case EventSpawned:
				spawned++
			case EventTick:
				ticks++
			case EventEnded:
				res := ev.Result
				ended = &res
			}
		case <-timeout:
			t.Fatalf("round did not end")
		}
	}
	if _, ok := <-r.Events(); ok {
		t.Fatalf("expected events channel to be closed")
	}
	r.Stop()

	if ticks != 2 {
		t.Fatalf("ticks=%d, want 2", ticks)
	}
	if spawned == 0 {
		t.Fatalf("expected at least one spawn")
	}
	if ended.RoundID != r.RoundID() {
		t.Fatalf("result round id mismatch")
	}
}

func TestRunnerClickScores(t *testing.T) {
	r := newTestRunner(time.Minute, 5*time.Millisecond, time.Hour)
	defer r.Stop()

	var target Orb
	for ev := range r.Events() {
		if ev.Kind == EventSpawned {
			target = ev.Orbs[0]
			break
		}
	}
	c, err := r.Click(target.ID)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if c.Points != BasePoints {
		t.Fatalf("points=%d, want %d", c.Points, BasePoints)
	}
	_, score, _ := r.Snapshot()
	if score != BasePoints {
		t.Fatalf("score=%d, want %d", score, BasePoints)
	}
}

func TestStopWithoutDrainingDoesNotLeak(t *testing.T) {
	r := Start(context.Background(), Area{W: 10, H: 5}, time.Minute, nil)
	time.Sleep(20 * time.Millisecond)
	r.Stop()
	r.Stop()
}
