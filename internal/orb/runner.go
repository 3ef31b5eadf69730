package orb

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

type EventKind int

const (
	EventSpawned EventKind = iota
	EventExpired
	EventTick
	EventEnded
)

// Event is emitted by a Runner as the round progresses.
type Event struct {
	Kind     EventKind
	Orbs     []Orb
	TimeLeft int
	Result   Result
}

// Runner drives a Round with wall-clock tickers. All Round access goes
// through the runner's mutex because clicks arrive from the UI goroutine.
type Runner struct {
	mu     sync.Mutex
	round  *Round
	now    func() time.Time
	events chan Event

	cancel context.CancelFunc
	done   chan struct{}
}

// Start begins a round in a background goroutine. The events channel is
// closed after EventEnded is delivered or the runner is stopped.
func Start(ctx context.Context, area Area, length time.Duration, rng *rand.Rand) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		round:  NewRound(area, length, rng),
		now:    time.Now,
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go r.loop(ctx, SpawnEvery, time.Second)
	return r
}

func (r *Runner) Events() <-chan Event { return r.events }

// Click forwards a catch to the round under the runner lock.
func (r *Runner) Click(id int) (Catch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round.Click(id, r.now())
}

// Snapshot returns the live orbs, score and time left.
func (r *Runner) Snapshot() ([]Orb, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round.Orbs(), r.round.Score(), r.round.TimeLeft()
}

func (r *Runner) RoundID() string { return r.round.ID }

// Stop cancels the round and waits for the loop goroutine to exit.
func (r *Runner) Stop() {
	r.cancel()
	<-r.done
}

func (r *Runner) loop(ctx context.Context, spawnEvery, tickEvery time.Duration) {
	defer close(r.done)
	defer close(r.events)

	spawn := time.NewTicker(spawnEvery)
	defer spawn.Stop()
	countdown := time.NewTicker(tickEvery)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-spawn.C:
			r.mu.Lock()
			now := r.now()
			gone := r.round.Expire(now)
			o, err := r.round.Spawn(now)
			r.mu.Unlock()
			if len(gone) > 0 && !r.emit(ctx, Event{Kind: EventExpired, Orbs: gone}) {
				return
			}
			if err == nil && !r.emit(ctx, Event{Kind: EventSpawned, Orbs: []Orb{o}}) {
				return
			}
		case <-countdown.C:
			r.mu.Lock()
			left, over := r.round.Tick()
			res := r.round.Result()
			r.mu.Unlock()
			if !r.emit(ctx, Event{Kind: EventTick, TimeLeft: left}) {
				return
			}
			if over {
				r.emit(ctx, Event{Kind: EventEnded, Result: res})
				return
			}
		}
	}
}

func (r *Runner) emit(ctx context.Context, ev Event) bool {
	select {
	case r.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
