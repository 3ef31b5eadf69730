package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mathquest/internal/engine"
	"mathquest/internal/scene"
	"mathquest/internal/ui"
)

const (
	cardLayers = 3
	cardW      = 36
	cardH      = 7
)

// cardRect is the scene card's bounds on screen, border included.
func cardRect() scene.Rect {
	return scene.Rect{Left: 0, Top: headerHeight + 1, Width: cardW + 2, Height: cardH + 2}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.quiz != nil:
		b.WriteString(m.renderQuiz())
	case m.builder.IsOpen():
		b.WriteString(m.renderBuilder())
	default:
		switch m.tab {
		case tabDashboard:
			b.WriteString(m.renderDashboard())
		case tabQuests:
			b.WriteString(m.renderQuests())
		case tabShop:
			b.WriteString(m.renderShop())
		case tabRanks:
			b.WriteString(m.renderRanks())
		case tabScenes:
			b.WriteString(m.renderScenes())
		case tabGame:
			b.WriteString(m.renderGame())
		}
	}

	b.WriteString("\n\n")
	if m.statusBad {
		b.WriteString(m.styles.Bad.Render(ui.IconWarn + " " + m.status))
	} else {
		b.WriteString(m.styles.Muted.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) renderHeader() string {
	r := m.rec
	s := m.styles
	parts := []string{
		s.Title.Render("Math Quest"),
		s.Gold.Render(fmt.Sprintf("%s Lv %d", ui.IconLevel, r.Level)),
		fmt.Sprintf("%s %d XP", ui.IconXP, r.XP),
		fmt.Sprintf("%d %s", r.Coins, ui.IconCoin),
		fmt.Sprintf("%d %s", r.Streak, ui.IconStreak),
		fmt.Sprintf("%s #%d", ui.IconRank, engine.Rank(r)),
		ui.ThemeIcon(string(m.theme)) + " " + ui.SoundIcon(r.Sound),
	}
	return strings.Join(parts, "  ")
}

func (m model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderDashboard() string {
	r := m.rec
	s := m.styles

	profile := []string{
		s.PanelTitle.Render("Progress"),
		fmt.Sprintf("Level %d", r.Level),
		m.xpBar.ViewAs(engine.ProgressFraction(r.XP)),
		s.Muted.Render(fmt.Sprintf("%d/%d · Next at %d XP", engine.ProgressWithinLevel(r.XP), engine.XPPerLevel, engine.NextLevelAt(r.Level))),
		"",
		ui.LabelValue("Points", engine.Points(r)),
		ui.LabelValue("Streak", fmt.Sprintf("%d %s", r.Streak, ui.IconStreak)),
		ui.LabelValue("Rank", fmt.Sprintf("#%d", engine.Rank(r))),
		ui.LabelValue("Quests done", r.QuestsCompleted),
		ui.LabelValue("Best score", r.BestScore),
	}

	quiz := s.Good.Render("available · press d")
	if !m.svc.QuizAvailable() {
		quiz = s.Muted.Render("done for today")
	}
	achievements := engine.Achievements(r)
	side := []string{
		s.PanelTitle.Render("Today"),
		fmt.Sprintf("%s Daily quiz: %s", ui.IconQuiz, quiz),
		fmt.Sprintf("%s %d/%d achievements", ui.IconRank, engine.CountEarned(achievements), len(achievements)),
		"",
		s.PanelTitle.Render("Top players"),
	}
	for i, p := range engine.Standings(r) {
		if i == 5 {
			break
		}
		side = append(side, m.playerLine(i+1, p))
	}
	side = append(side, "", s.Muted.Render(fmt.Sprintf("%s %s", ui.IconScene, m.slides.Caption())))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(strings.Join(profile, "\n")),
		"  ",
		s.Panel.Render(strings.Join(side, "\n")),
	)
}

func (m model) playerLine(rank int, p engine.Player) string {
	line := fmt.Sprintf("#%-2d %-6s Lv %-3d %5d XP", rank, p.Name, p.Level, p.XP)
	if p.You {
		return m.styles.Gold.Render(line)
	}
	return line
}

func (m model) renderQuests() string {
	s := m.styles
	page := m.board.Page()
	filter := "all"
	if t := m.board.Type(); t != "" {
		filter = string(t)
	}

	lines := []string{
		fmt.Sprintf("%s  %s  %s",
			m.search.View(),
			ui.LabelValue("Type", filter),
			s.Muted.Render(fmt.Sprintf("Page %d/%d (%d quests)", page.Page, page.TotalPages, page.Total)),
		),
		"",
	}

	if len(page.Quests) == 0 {
		lines = append(lines, s.Muted.Render("No quests match."))
		if sug := engine.Suggest(m.board.Search()); len(sug) > 0 {
			lines = append(lines, "Did you mean: "+s.Key.Render(strings.Join(sug, ", "))+"?")
		}
		return strings.Join(lines, "\n")
	}

	for i, q := range m.svc.QuestStates(page.Quests) {
		action := s.Good.Render(fmt.Sprintf("+%d XP", q.XP))
		switch {
		case q.Completed:
			action = s.Muted.Render(ui.IconDone + " Done")
		case !q.Unlocked:
			action = s.Muted.Render(fmt.Sprintf("%s Lv %d", ui.IconLock, q.MinLevel))
		}
		row := fmt.Sprintf("%-16s %-9s %2d XP / %2d %s  %s", q.Title, q.Type, q.XP, q.Coins, ui.IconCoin, action)
		if i == m.questSel {
			row = s.SelectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	pager := make([]string, 0, page.TotalPages)
	for i := 1; i <= page.TotalPages; i++ {
		if i == page.Page {
			pager = append(pager, s.Key.Render(fmt.Sprintf("[%d]", i)))
		} else {
			pager = append(pager, s.Muted.Render(fmt.Sprintf(" %d ", i)))
		}
	}
	lines = append(lines, "", strings.Join(pager, ""))
	return strings.Join(lines, "\n")
}

func (m model) renderShop() string {
	s := m.styles
	lines := []string{s.PanelTitle.Render(ui.IconShop + " Shop"), ""}
	for i, e := range m.svc.ShopEntries() {
		btn := s.Good.Render(fmt.Sprintf("Buy (%d%s)", e.Cost, ui.IconCoin))
		switch {
		case e.Owned:
			btn = s.Muted.Render("Owned")
		case !e.Affordable:
			btn = s.Bad.Render(fmt.Sprintf("Buy (%d%s)", e.Cost, ui.IconCoin))
		}
		row := fmt.Sprintf("%s %-13s %-10s %s", e.Emoji, e.Name, ui.RarityText(e.Rarity), btn)
		if i == m.shopSel {
			row = "> " + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderRanks() string {
	s := m.styles
	board := []string{s.PanelTitle.Render("Leaderboard"), s.Muted.Render("#   Name   Lv     XP")}
	for i, p := range engine.Standings(m.rec) {
		board = append(board, m.playerLine(i+1, p))
	}

	badges := []string{s.PanelTitle.Render("Achievements")}
	for _, a := range engine.Achievements(m.rec) {
		if a.Earned {
			badges = append(badges, fmt.Sprintf("%s %s", a.Icon, a.Name))
		} else {
			badges = append(badges, s.Muted.Render(fmt.Sprintf("%s %s", ui.IconLock, a.Name)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(strings.Join(board, "\n")),
		"  ",
		s.Panel.Render(strings.Join(badges, "\n")),
	)
}

func (m model) renderScenes() string {
	s := m.styles
	cur := m.slides.Current()
	caption := fmt.Sprintf("%s %d/%d  %s", ui.IconScene, m.slides.Index()+1, m.slides.Len(), m.slides.Caption())

	// Three layers: sky, skyline, car. Deeper layers shift further.
	layers := [cardLayers]struct {
		row  int
		text string
	}{
		{1, "·   ✦      ·    ✦     ·"},
		{3, "▂▄▆█▆▄▂ " + cur.City + " ▂▄█▆▂"},
		{5, "=[" + cur.Car + "]="},
	}
	rows := make([]string, cardH)
	for i := range rows {
		rows[i] = strings.Repeat(" ", cardW)
	}
	for i, l := range layers {
		shift := 0
		if i < len(m.offsets) {
			shift = int(math.Round(m.offsets[i].X / 5))
		}
		rows[l.row] = placeText(l.text, 4+shift, cardW)
	}
	card := s.Panel.Padding(0).Render(strings.Join(rows, "\n"))

	return strings.Join([]string{
		s.Text.Render(caption),
		card,
		s.Muted.Render("←/→ slides · enter or click the card to build this scene"),
	}, "\n")
}

// placeText writes text into a blank line of width w starting at column col.
func placeText(text string, col, w int) string {
	line := []rune(strings.Repeat(" ", w))
	for i, r := range []rune(text) {
		if c := col + i; c >= 0 && c < w {
			line[c] = r
		}
	}
	return string(line)
}

func (m model) renderGame() string {
	s := m.styles
	g := m.game
	score, left, running := 0, int(m.opts.RoundLength.Seconds()), false
	if g != nil {
		score, left, running = g.score, g.timeLeft, g.running
	}

	head := fmt.Sprintf("%s Score: %d   Time: %ds   Best: %d", ui.IconGame, score, left, m.rec.BestScore)

	grid := make([][]string, gameArea.H)
	for y := range grid {
		grid[y] = make([]string, gameArea.W)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	if g != nil {
		for _, id := range orbIDs(g.orbs) {
			o := g.orbs[id]
			grid[o.Y][o.X] = s.Orb.Render(orbLetter(id))
		}
	}
	lines := []string{head, "┌" + strings.Repeat("─", gameArea.W) + "┐"}
	for _, row := range grid {
		lines = append(lines, "│"+strings.Join(row, "")+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", gameArea.W)+"┘")

	if running {
		lines = append(lines, s.Muted.Render("press an orb's letter or click it · esc to stop"))
	} else {
		lines = append(lines, s.Good.Render("press enter to start a round"))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderQuiz() string {
	s := m.styles
	q := m.quiz.q
	lines := []string{s.Title.Render(ui.IconQuiz + " Daily Quiz"), "", q.Question, ""}
	for i, opt := range q.Options {
		row := fmt.Sprintf("%d) %s", i+1, opt)
		if i == m.quiz.sel {
			row = s.SelectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", s.Muted.Render("enter answer · esc close"))
	return s.Modal.Render(strings.Join(lines, "\n"))
}

func (m model) renderBuilder() string {
	s := m.styles
	p := m.builder.Current()
	lines := []string{
		s.Title.Render(ui.IconScene + " Scene Builder"),
		"",
		ui.LabelValue("Car", p.Alt),
		s.Muted.Render(p.Image),
		"",
		s.Muted.Render("r randomize · s save (+30 XP) · esc close"),
	}
	return s.Modal.Render(strings.Join(lines, "\n"))
}
