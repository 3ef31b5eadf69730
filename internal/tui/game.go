package tui

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mathquest/internal/cue"
	"mathquest/internal/orb"
	"mathquest/internal/scene"
)

// Game area in cells. Orbs are caught by pressing their letter or clicking.
var gameArea = orb.Area{W: 40, H: 10}

// orbLetters skips the letters bound to global keys.
const orbLetters = "asfghjklzxcvnweruiop"

func orbLetter(id int) string {
	return string(orbLetters[(id-1)%len(orbLetters)])
}

// waitEvent blocks on the runner's next event. A stopped runner closes the
// channel, which turns into an ok=false message that Update drops.
func waitEvent(r *orb.Runner) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-r.Events()
		return orbEventMsg{runner: r, ev: ev, ok: ok}
	}
}

// startGame cancels any running round and starts a new one.
func (m model) startGame() (tea.Model, tea.Cmd) {
	m.stopGame()
	rng := rand.New(rand.NewPCG(m.rng.Uint64(), m.rng.Uint64()))
	r := orb.Start(m.ctx, gameArea, m.opts.RoundLength, rng)
	m.game = &gameState{
		runner:   r,
		running:  true,
		orbs:     map[int]orb.Orb{},
		timeLeft: int(m.opts.RoundLength.Seconds()),
	}
	m.setStatus("Catch the orbs! Press their letter or click them.")
	return m, waitEvent(r)
}

func (m *model) stopGame() {
	if m.game == nil || m.game.runner == nil {
		return
	}
	m.game.runner.Stop()
	m.game.running = false
}

func (m model) handleOrbEvent(msg orbEventMsg) (tea.Model, tea.Cmd) {
	if m.game == nil || msg.runner != m.game.runner || !msg.ok || !m.game.running {
		return m, nil
	}
	g := m.game
	switch msg.ev.Kind {
	case orb.EventSpawned:
		for _, o := range msg.ev.Orbs {
			g.orbs[o.ID] = o
		}
	case orb.EventExpired:
		for _, o := range msg.ev.Orbs {
			delete(g.orbs, o.ID)
		}
	case orb.EventTick:
		g.timeLeft = msg.ev.TimeLeft
	case orb.EventEnded:
		g.running = false
		g.orbs = map[int]orb.Orb{}
		g.score = msg.ev.Result.Score
		g.runner.Stop()
		return m, m.finishRoundCmd(msg.ev.Result)
	}
	return m, waitEvent(g.runner)
}

// handleGameKey catches the orb labelled with the pressed letter and stops
// the round on esc. ok is false for keys the game does not use.
func (m model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	k := msg.String()
	if k == "esc" {
		m.stopGame()
		m.setStatus("Round abandoned.")
		return m, nil, true
	}
	if len(k) != 1 || !strings.Contains(orbLetters, k) {
		return m, nil, false
	}
	for _, id := range orbIDs(m.game.orbs) {
		if orbLetter(id) == k {
			m.catch(id)
			return m, nil, true
		}
	}
	return m, nil, true
}

// orbIDs returns the ids in spawn order, which is also the draw order.
func orbIDs(orbs map[int]orb.Orb) []int {
	ids := make([]int, 0, len(orbs))
	for id := range orbs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// orbAt finds the orb drawn on top at a grid cell: the newest one covering it.
func orbAt(orbs map[int]orb.Orb, x, y int) (int, bool) {
	ids := orbIDs(orbs)
	for i := len(ids) - 1; i >= 0; i-- {
		o := orbs[ids[i]]
		if x >= o.X && x < o.X+orb.OrbSize && y >= o.Y && y < o.Y+orb.OrbSize {
			return ids[i], true
		}
	}
	return 0, false
}

func (m *model) catch(id int) {
	c, err := m.game.runner.Click(id)
	delete(m.game.orbs, id)
	if err != nil {
		if errors.Is(err, orb.ErrOrbMissing) {
			m.setStatus("Too slow!")
		}
		return
	}
	m.game.score = c.Score
	m.svc.PlayCue(cue.OrbCatch(c.Multiplier))
	if c.Multiplier > 1 {
		m.setStatus(fmt.Sprintf("+%d (x%d combo!)", c.Points, c.Multiplier))
	} else {
		m.setStatus(fmt.Sprintf("+%d", c.Points))
	}
}

// Screen layout used for mouse hit testing. The header is three lines; the
// game grid and the scene card each sit below one line of their own text and
// inside a one-cell border.
const (
	headerHeight = 3
	gridTop      = headerHeight + 2
	gridLeft     = 1
)

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modalOpen() {
		return m, nil
	}
	switch m.tab {
	case tabScenes:
		card := cardRect()
		m.offsets = scene.LayerOffsets(card, float64(msg.X), float64(msg.Y), cardLayers)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && card.Contains(float64(msg.X), float64(msg.Y)) {
			p := scene.PresetFromSlide(m.slides.Current())
			m.builder.Open(&p)
		}
	case tabGame:
		if m.game == nil || !m.game.running {
			return m, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, ok := orbAt(m.game.orbs, msg.X-gridLeft, msg.Y-gridTop); ok {
			m.catch(id)
		}
	}
	return m, nil
}
