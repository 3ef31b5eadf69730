// Package orb implements the Orb Catcher reaction game: orbs appear at random
// spots in a bounded area and the faster they are caught in succession, the
// bigger the score multiplier.
package orb

import (
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRoundLength = 30 * time.Second
	SpawnEvery         = 600 * time.Millisecond
	Lifetime           = 2400 * time.Millisecond
	BasePoints         = 10
	OrbSize            = 1
)

var (
	ErrRoundOver  = errors.New("round is over")
	ErrOrbMissing = errors.New("orb is gone")
)

// Area is the playfield in cells.
type Area struct {
	W int
	H int
}

type Orb struct {
	ID        int
	X         int
	Y         int
	SpawnedAt time.Time
	ExpiresAt time.Time
}

// Catch is the outcome of a successful click.
type Catch struct {
	OrbID      int
	Multiplier int
	Points     int
	Score      int
}

// Result summarizes a finished round.
type Result struct {
	RoundID string
	Score   int
	Catches int
	Missed  int
}

// Multiplier maps the gap since the previous successful click to a bonus.
func Multiplier(sinceLast time.Duration) int {
	switch {
	case sinceLast < 200*time.Millisecond:
		return 5
	case sinceLast < 350*time.Millisecond:
		return 3
	case sinceLast < 500*time.Millisecond:
		return 2
	default:
		return 1
	}
}

// Reward converts a round score into XP and coins.
func Reward(score int) (xp int, coins int) {
	if score <= 0 {
		return 0, 0
	}
	xp = score / 6
	return xp, xp / 2
}

// Round holds the state of one game. It never reads the clock itself:
// every method takes the current time, which keeps it deterministic.
type Round struct {
	ID       string
	area     Area
	rng      *rand.Rand
	timeLeft int

	nextID    int
	orbs      map[int]*Orb
	lastClick time.Time
	clicked   bool

	score   int
	catches int
	missed  int
	over    bool
}

func NewRound(area Area, length time.Duration, rng *rand.Rand) *Round {
	if length <= 0 {
		length = DefaultRoundLength
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x0b5))
	}
	return &Round{
		ID:       uuid.NewString(),
		area:     area,
		rng:      rng,
		timeLeft: int(length / time.Second),
		orbs:     map[int]*Orb{},
	}
}

// Spawn places a new orb at a random position that keeps it inside the area
// and off the cells of live orbs. Only a full area lets orbs share a cell.
func (r *Round) Spawn(now time.Time) (Orb, error) {
	if r.over {
		return Orb{}, ErrRoundOver
	}
	x, y := r.freeCell()
	r.nextID++
	o := &Orb{
		ID:        r.nextID,
		X:         x,
		Y:         y,
		SpawnedAt: now,
		ExpiresAt: now.Add(Lifetime),
	}
	r.orbs[o.ID] = o
	return *o, nil
}

// maxRerolls bounds the random tries before falling back to a scan.
const maxRerolls = 20

func (r *Round) freeCell() (int, int) {
	spanX, spanY := r.area.W-OrbSize, r.area.H-OrbSize
	x, y := randomCoord(r.rng, spanX), randomCoord(r.rng, spanY)
	for i := 0; i < maxRerolls && r.occupied(x, y); i++ {
		x, y = randomCoord(r.rng, spanX), randomCoord(r.rng, spanY)
	}
	if !r.occupied(x, y) {
		return x, y
	}
	for cy := 0; cy <= max(spanY, 0); cy++ {
		for cx := 0; cx <= max(spanX, 0); cx++ {
			if !r.occupied(cx, cy) {
				return cx, cy
			}
		}
	}
	return x, y
}

func (r *Round) occupied(x, y int) bool {
	for _, o := range r.orbs {
		if x < o.X+OrbSize && o.X < x+OrbSize && y < o.Y+OrbSize && o.Y < y+OrbSize {
			return true
		}
	}
	return false
}

func randomCoord(rng *rand.Rand, span int) int {
	if span <= 0 {
		return 0
	}
	return rng.IntN(span + 1)
}

// Expire removes orbs whose lifetime has passed and returns them.
func (r *Round) Expire(now time.Time) []Orb {
	var gone []Orb
	for id, o := range r.orbs {
		if !now.Before(o.ExpiresAt) {
			gone = append(gone, *o)
			delete(r.orbs, id)
		}
	}
	r.missed += len(gone)
	sort.Slice(gone, func(i, j int) bool { return gone[i].ID < gone[j].ID })
	return gone
}

// Click catches a live orb. The multiplier is based on the time since the
// previous successful click; the first catch of a round is always x1.
func (r *Round) Click(id int, now time.Time) (Catch, error) {
	if r.over {
		return Catch{}, ErrRoundOver
	}
	o, ok := r.orbs[id]
	if !ok {
		return Catch{}, ErrOrbMissing
	}
	delete(r.orbs, id)
	if !now.Before(o.ExpiresAt) {
		r.missed++
		return Catch{}, ErrOrbMissing
	}

	mult := 1
	if r.clicked {
		mult = Multiplier(now.Sub(r.lastClick))
	}
	r.lastClick = now
	r.clicked = true

	pts := BasePoints * mult
	r.score += pts
	r.catches++
	return Catch{OrbID: id, Multiplier: mult, Points: pts, Score: r.score}, nil
}

// Tick advances the countdown by one second and reports whether the round ended.
func (r *Round) Tick() (timeLeft int, over bool) {
	if r.over {
		return 0, true
	}
	r.timeLeft--
	if r.timeLeft <= 0 {
		r.timeLeft = 0
		r.finish()
	}
	return r.timeLeft, r.over
}

func (r *Round) finish() {
	r.over = true
	r.missed += len(r.orbs)
	r.orbs = map[int]*Orb{}
}

// Orbs returns live orbs ordered by id.
func (r *Round) Orbs() []Orb {
	out := make([]Orb, 0, len(r.orbs))
	for _, o := range r.orbs {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Round) Score() int    { return r.score }
func (r *Round) TimeLeft() int { return r.timeLeft }
func (r *Round) Over() bool    { return r.over }
func (r *Round) Area() Area    { return r.area }

func (r *Round) Result() Result {
	return Result{RoundID: r.ID, Score: r.score, Catches: r.catches, Missed: r.missed}
}
