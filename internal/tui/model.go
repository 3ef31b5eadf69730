package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mathquest/internal/engine"
	"mathquest/internal/orb"
	"mathquest/internal/scene"
	"mathquest/internal/ui"
)

type tab int

const (
	tabDashboard tab = iota
	tabQuests
	tabShop
	tabRanks
	tabScenes
	tabGame
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Quests", "Shop", "Ranks", "Scenes", "Game"}

// Options tune the TUI. Zero values fall back to the game defaults.
type Options struct {
	PageSize    int
	RoundLength time.Duration
	Rand        *rand.Rand

	// GameTab opens on the Orb Catcher tab instead of the dashboard.
	GameTab bool
}

type quizState struct {
	q   engine.QuizQuestion
	sel int
}

type gameState struct {
	runner   *orb.Runner
	running  bool
	orbs     map[int]orb.Orb
	score    int
	timeLeft int
}

type model struct {
	ctx  context.Context
	svc  *engine.Service
	opts Options
	rng  *rand.Rand

	keys   keyMap
	help   help.Model
	xpBar  progress.Model
	styles ui.Styles

	width  int
	height int
	tab    tab
	rec    engine.Record
	theme  engine.Theme

	status    string
	statusBad bool

	board    *engine.Board
	search   textinput.Model
	questSel int
	shopSel  int

	slides  *scene.Slideshow
	builder *scene.Builder
	offsets []scene.Offset

	quiz *quizState
	game *gameState
}

type actionMsg struct {
	out engine.Outcome
	err error
}

type purchaseMsg struct {
	item engine.ShopItem
	err  error
}

type themeMsg struct {
	theme engine.Theme
	err   error
}

type soundMsg struct {
	on  bool
	err error
}

type slideTickMsg struct{ gen int }

type orbEventMsg struct {
	runner *orb.Runner
	ev     orb.Event
	ok     bool
}

func newModel(ctx context.Context, svc *engine.Service, opts Options) model {
	if opts.PageSize <= 0 {
		opts.PageSize = engine.QuestsPerPage
	}
	if opts.RoundLength <= 0 {
		opts.RoundLength = orb.DefaultRoundLength
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x5eed))
	}

	ti := textinput.New()
	ti.Placeholder = "Search quests..."
	ti.CharLimit = 40
	ti.Width = 30

	start := tabDashboard
	if opts.GameTab {
		start = tabGame
	}
	theme := svc.Theme()
	return model{
		ctx:     ctx,
		svc:     svc,
		opts:    opts,
		rng:     rng,
		tab:     start,
		keys:    defaultKeys(),
		help:    help.New(),
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		styles:  ui.ForTheme(string(theme)),
		theme:   theme,
		rec:     svc.Record(),
		status:  "Welcome back!",
		board:   engine.NewBoard(opts.PageSize),
		search:  ti,
		slides:  scene.NewSlideshow(nil),
		builder: scene.NewBuilder(),
		offsets: make([]scene.Offset, cardLayers),
	}
}

func (m model) Init() tea.Cmd {
	return slideTick(m.slides.Restart())
}

func slideTick(gen int) tea.Cmd {
	return tea.Tick(scene.Interval, func(time.Time) tea.Msg { return slideTickMsg{gen: gen} })
}

func (m model) modalOpen() bool {
	return m.quiz != nil || m.builder.IsOpen()
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusBad = false
}

func (m *model) setAlert(err error) {
	m.status = alertText(err)
	m.statusBad = true
}

// alertText turns guard errors into the short messages shown to the player.
func alertText(err error) string {
	var short engine.InsufficientCoinsError
	switch {
	case errors.As(err, &short):
		return "Not enough coins!"
	case errors.Is(err, engine.ErrQuizTaken):
		return "You already completed today's quiz!"
	case errors.Is(err, engine.ErrAlreadyOwned):
		return "You already own that."
	case errors.Is(err, engine.ErrQuestCompleted):
		return "Quest already done."
	default:
		return err.Error()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case slideTickMsg:
		if m.slides.Advance(msg.gen) {
			return m, slideTick(msg.gen)
		}
		return m, nil

	case actionMsg:
		m.rec = m.svc.Record()
		if msg.err != nil {
			m.setAlert(msg.err)
			return m, nil
		}
		text := msg.out.Message
		if msg.out.LeveledUp {
			text = fmt.Sprintf("%s  %s Level %d!", text, ui.BadgeLevelUp, msg.out.Level)
		}
		m.setStatus(text)
		return m, nil

	case purchaseMsg:
		m.rec = m.svc.Record()
		if msg.err != nil {
			m.setAlert(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Bought %s %s!", msg.item.Emoji, msg.item.Name))
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.setAlert(msg.err)
			return m, nil
		}
		m.theme = msg.theme
		m.styles = ui.ForTheme(string(msg.theme))
		m.setStatus(fmt.Sprintf("%s %s theme", ui.ThemeIcon(string(msg.theme)), msg.theme))
		return m, nil

	case soundMsg:
		m.rec = m.svc.Record()
		if msg.err != nil {
			m.setAlert(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s sound %s", ui.SoundIcon(msg.on), onOff(msg.on)))
		return m, nil

	case orbEventMsg:
		return m.handleOrbEvent(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.stopGame()
		return m, tea.Quit
	}

	switch {
	case m.quiz != nil:
		return m.handleQuizKey(msg)
	case m.builder.IsOpen():
		return m.handleBuilderKey(msg)
	case m.search.Focused():
		return m.handleSearchKey(msg)
	}

	if m.tab == tabGame && m.game != nil && m.game.running {
		if next, cmd, ok := m.handleGameKey(msg); ok {
			return next, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopGame()
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleThemeCmd()
	case key.Matches(msg, m.keys.Sound):
		return m, m.toggleSoundCmd()
	case key.Matches(msg, m.keys.Quiz):
		return m.openQuiz()
	case key.Matches(msg, m.keys.Builder):
		m.builder.Open(nil)
		return m, nil
	}

	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] < '1'+byte(tabCount) {
		m.tab = tab(k[0] - '1')
		return m, nil
	}

	switch m.tab {
	case tabDashboard:
		return m.handleSlideKey(msg)
	case tabQuests:
		return m.handleQuestKey(msg)
	case tabShop:
		return m.handleShopKey(msg)
	case tabScenes:
		if key.Matches(msg, m.keys.Enter) {
			p := scene.PresetFromSlide(m.slides.Current())
			m.builder.Open(&p)
			return m, nil
		}
		return m.handleSlideKey(msg)
	case tabGame:
		if key.Matches(msg, m.keys.Enter) {
			return m.startGame()
		}
	}
	return m, nil
}

func (m model) handleSlideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.slides.HandleKey(msg.String(), m.modalOpen(), m.search.Focused()) {
		return m, slideTick(m.slides.Restart())
	}
	return m, nil
}

func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.board.Search() {
		m.board.SetSearch(m.search.Value())
		m.questSel = 0
	}
	return m, cmd
}

func (m model) handleQuestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.board.Page()
	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		t := m.board.CycleType()
		m.questSel = 0
		if t == "" {
			m.setStatus("Showing all quest types")
		} else {
			m.setStatus("Showing " + string(t) + " quests")
		}
	case key.Matches(msg, m.keys.NextPg):
		m.board.NextPage()
		m.questSel = 0
	case key.Matches(msg, m.keys.PrevPg):
		m.board.PrevPage()
		m.questSel = 0
	case key.Matches(msg, m.keys.Up):
		if m.questSel > 0 {
			m.questSel--
		}
	case key.Matches(msg, m.keys.Down):
		if m.questSel < len(page.Quests)-1 {
			m.questSel++
		}
	case key.Matches(msg, m.keys.Info):
		if q, ok := m.selectedQuest(page); ok {
			m.setStatus(strings.ReplaceAll(q.Info(), "\n", " · "))
		}
	case key.Matches(msg, m.keys.Enter):
		if q, ok := m.selectedQuest(page); ok {
			return m, m.completeCmd(q.ID)
		}
	}
	return m, nil
}

func (m model) selectedQuest(page engine.BoardPage) (engine.Quest, bool) {
	if m.questSel < 0 || m.questSel >= len(page.Quests) {
		return engine.Quest{}, false
	}
	return page.Quests[m.questSel], true
}

func (m model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := engine.ShopItems()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.shopSel > 0 {
			m.shopSel--
		}
	case key.Matches(msg, m.keys.Down):
		if m.shopSel < len(items)-1 {
			m.shopSel++
		}
	case key.Matches(msg, m.keys.Enter):
		return m, m.purchaseCmd(items[m.shopSel].ID)
	}
	return m, nil
}

func (m model) openQuiz() (tea.Model, tea.Cmd) {
	q, err := m.svc.OpenQuiz()
	if err != nil {
		m.setAlert(err)
		return m, nil
	}
	m.quiz = &quizState{q: q}
	return m, nil
}

func (m model) handleQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.quiz = nil
	case key.Matches(msg, m.keys.Up):
		if m.quiz.sel > 0 {
			m.quiz.sel--
		}
	case key.Matches(msg, m.keys.Down):
		if m.quiz.sel < len(m.quiz.q.Options)-1 {
			m.quiz.sel++
		}
	case key.Matches(msg, m.keys.Enter):
		q, sel := m.quiz.q, m.quiz.sel
		m.quiz = nil
		return m, m.answerCmd(q, sel)
	default:
		if k := msg.String(); len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(m.quiz.q.Options) {
			q := m.quiz.q
			m.quiz = nil
			return m, m.answerCmd(q, int(k[0]-'1'))
		}
	}
	return m, nil
}

func (m model) handleBuilderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.builder.Close()
	case "r":
		p := m.builder.Randomize(m.rng)
		m.setStatus("Randomized: " + p.Alt)
	case "s", "enter":
		ref := m.builder.Current().Alt
		m.builder.Close()
		return m, m.saveSceneCmd(ref)
	}
	return m, nil
}

func (m model) completeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.CompleteQuest(m.ctx, id)
		return actionMsg{out: out, err: err}
	}
}

func (m model) purchaseCmd(id int) tea.Cmd {
	return func() tea.Msg {
		it, err := m.svc.Purchase(m.ctx, id)
		return purchaseMsg{item: it, err: err}
	}
}

func (m model) answerCmd(q engine.QuizQuestion, choice int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.AnswerQuiz(m.ctx, q, choice)
		return actionMsg{out: out, err: err}
	}
}

func (m model) saveSceneCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.SaveScene(m.ctx, ref)
		return actionMsg{out: out, err: err}
	}
}

func (m model) finishRoundCmd(res orb.Result) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.FinishRound(m.ctx, res)
		return actionMsg{out: out, err: err}
	}
}

func (m model) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.ToggleTheme(m.ctx)
		return themeMsg{theme: t, err: err}
	}
}

func (m model) toggleSoundCmd() tea.Cmd {
	return func() tea.Msg {
		on, err := m.svc.ToggleSound(m.ctx)
		return soundMsg{on: on, err: err}
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
