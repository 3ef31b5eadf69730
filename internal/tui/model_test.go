package tui

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mathquest/internal/cue"
	"mathquest/internal/engine"
	"mathquest/internal/orb"
	"mathquest/internal/storage"
)

func newTestModel(t *testing.T, seed map[string]string) model {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv := storage.NewKVRepo(db)
	for k, v := range seed {
		require.NoError(t, kv.Set(ctx, k, v))
	}
	svc := engine.NewService(kv, storage.NewAwardRepo(db), engine.Options{
		Logger: zaptest.NewLogger(t),
		Cue:    &cue.Recorder{},
		Now:    func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
		Rand:   rand.New(rand.NewPCG(5, 5)),
	})
	require.NoError(t, svc.Load(ctx))
	return newModel(ctx, svc, Options{Rand: rand.New(rand.NewPCG(6, 6)), RoundLength: time.Minute})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

// pressRun feeds msg through Update, runs the service command it returns
// and feeds the result back in, the way the program loop would.
func pressRun(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	return next.(model)
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, tabDashboard, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabQuests, m.tab)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabGame, m.tab)
	m = press(t, m, runes("4"))
	assert.Equal(t, tabRanks, m.tab)
	assert.Contains(t, m.View(), "Leaderboard")
}

func TestCompleteQuestFromBoard(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("2"))
	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 20, m.rec.XP)
	assert.Equal(t, 5, m.rec.Coins)
	assert.Contains(t, m.status, "Easy Quest 1 complete!")
	assert.False(t, m.statusBad)

	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusBad)
	assert.Equal(t, "Quest already done.", m.status)
	assert.Equal(t, 20, m.rec.XP)
}

func TestLockedQuestShowsGate(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("2"))
	m = press(t, m, runes("f"))
	m = press(t, m, runes("f"))
	assert.Equal(t, engine.QuestDaily, m.board.Type())

	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusBad)
	assert.Contains(t, m.status, "requires level 2")
}

func TestSearchSwallowsShortcuts(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("2"))
	m = press(t, m, runes("/"))
	require.True(t, m.search.Focused())

	for _, r := range "boss" {
		m = press(t, m, runes(string(r)))
	}
	assert.Equal(t, "boss", m.board.Search())
	assert.Equal(t, 8, m.board.Page().Total)
	assert.Equal(t, engine.ThemeDark, m.theme)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.search.Focused())
	m = pressRun(t, m, runes("t"))
	assert.Equal(t, engine.ThemeLight, m.theme)
}

func TestSearchSuggestsOnMiss(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("2"))
	m = press(t, m, runes("/"))
	for _, r := range "chalenge" {
		m = press(t, m, runes(string(r)))
	}
	view := m.View()
	assert.Contains(t, view, "No quests match.")
	assert.Contains(t, view, "challenge")
}

func TestShopPurchase(t *testing.T) {
	m := newTestModel(t, map[string]string{engine.SaveKey: `{"coins":12}`})
	m = press(t, m, runes("3"))
	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.rec.Coins)
	assert.True(t, m.rec.Owns(1))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusBad)
	assert.Equal(t, "Not enough coins!", m.status)
	assert.Equal(t, 2, m.rec.Coins)
}

func TestDailyQuizModal(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("d"))
	require.NotNil(t, m.quiz)
	assert.Contains(t, m.View(), "Daily Quiz")

	answer := m.quiz.q.Answer
	for i := 0; i < answer; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = pressRun(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.quiz)
	assert.Equal(t, "Correct! +40 XP", m.status)
	assert.Equal(t, 40, m.rec.XP)

	m = press(t, m, runes("d"))
	assert.Nil(t, m.quiz)
	assert.Equal(t, "You already completed today's quiz!", m.status)
}

func TestSlideArrowsIgnoredWhileModalOpen(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("5"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.slides.Index())

	m = press(t, m, runes("d"))
	require.NotNil(t, m.quiz)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.slides.Index())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 9, m.slides.Index())
}

func TestStaleSlideTickIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	gen := m.slides.Restart()

	next, cmd := m.Update(slideTickMsg{gen: gen})
	m = next.(model)
	assert.Equal(t, 1, m.slides.Index())
	assert.NotNil(t, cmd)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	next, cmd = m.Update(slideTickMsg{gen: gen})
	m = next.(model)
	assert.Equal(t, 2, m.slides.Index())
	assert.Nil(t, cmd)
}

func TestBuilderSaveScene(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("5"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.builder.IsOpen())
	assert.Equal(t, "Dubai Lamborghini Urus", m.builder.Current().Alt)

	m = pressRun(t, m, runes("s"))
	assert.False(t, m.builder.IsOpen())
	assert.Equal(t, 30, m.rec.XP)
	assert.Equal(t, 10, m.rec.Coins)
	assert.Equal(t, "Scene saved! +30 XP", m.status)
}

func TestSceneCardParallaxAndClick(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("5"))

	card := cardRect()
	m = press(t, m, tea.MouseMsg{X: int(card.Left), Y: int(card.Top), Action: tea.MouseActionMotion})
	require.Len(t, m.offsets, cardLayers)
	assert.Greater(t, m.offsets[2].X, m.offsets[0].X)

	m = press(t, m, tea.MouseMsg{X: 100, Y: 100, Action: tea.MouseActionMotion})
	assert.Zero(t, m.offsets[2].X)

	m = press(t, m, tea.MouseMsg{X: 5, Y: int(card.Top) + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.builder.IsOpen())
}

func TestThemeAndSoundToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m = pressRun(t, m, runes("t"))
	assert.Equal(t, engine.ThemeLight, m.theme)
	assert.Equal(t, engine.ThemeLight, m.svc.Theme())

	m = pressRun(t, m, runes("m"))
	assert.False(t, m.rec.Sound)
	assert.True(t, strings.Contains(m.status, "sound off"))
}

func TestGameStartAndStop(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("6"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)
	require.NotNil(t, m.game)
	assert.True(t, m.game.running)
	first := m.game.runner

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	assert.False(t, m.game.running)
	assert.Equal(t, "Round abandoned.", m.status)

	// The pending wait returns once the stopped runner closes its channel.
	msg := cmd().(orbEventMsg)
	assert.Same(t, first, msg.runner)
	next, cmd = m.Update(msg)
	m = next.(model)
	assert.Nil(t, cmd)
}

func TestStackedOrbsResolveToNewest(t *testing.T) {
	orbs := map[int]orb.Orb{
		7: {ID: 7, X: 3, Y: 2},
		2: {ID: 2, X: 3, Y: 2},
		4: {ID: 4, X: 9, Y: 0},
	}
	assert.Equal(t, []int{2, 4, 7}, orbIDs(orbs))

	for i := 0; i < 20; i++ {
		id, ok := orbAt(orbs, 3, 2)
		require.True(t, ok)
		assert.Equal(t, 7, id)
	}
	id, ok := orbAt(orbs, 9, 0)
	require.True(t, ok)
	assert.Equal(t, 4, id)

	_, ok = orbAt(orbs, 0, 0)
	assert.False(t, ok)
}
