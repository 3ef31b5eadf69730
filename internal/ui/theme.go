package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Math Quest theme (CLI + TUI).
// Two palettes share one set of styles; the CLI uses the package-level
// dark styles, the TUI rebuilds Styles when the theme is toggled.

const (
	IconLevel   = "🚀"
	IconXP      = "✨"
	IconCoin    = "💰"
	IconStreak  = "🔥"
	IconRank    = "🏆"
	IconQuest   = "🗺️"
	IconDone    = "✅"
	IconLock    = "🔒"
	IconShop    = "🛒"
	IconQuiz    = "🎓"
	IconScene   = "🏙️"
	IconGame    = "🎮"
	IconOrb     = "●"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconSoundOn = "🔊"
	IconMuted   = "🔇"
	IconLight   = "🌞"
	IconDark    = "🌗"
)

type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Muted   lipgloss.Color
	Gold    lipgloss.Color
	Text    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary: lipgloss.Color("63"),  // blue
		Accent:  lipgloss.Color("205"), // magenta
		Good:    lipgloss.Color("42"),  // green
		Warn:    lipgloss.Color("214"), // orange
		Bad:     lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("244"), // gray
		Gold:    lipgloss.Color("220"), // gold
		Text:    lipgloss.Color("252"),
	}
	LightPalette = Palette{
		Primary: lipgloss.Color("25"),
		Accent:  lipgloss.Color("162"),
		Good:    lipgloss.Color("28"),
		Warn:    lipgloss.Color("166"),
		Bad:     lipgloss.Color("160"),
		Muted:   lipgloss.Color("240"),
		Gold:    lipgloss.Color("136"),
		Text:    lipgloss.Color("235"),
	}
)

type Styles struct {
	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style
	Text  lipgloss.Style

	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	SelectedRow lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Modal       lipgloss.Style
	Orb         lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		H2:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),
		Key:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Good:  lipgloss.NewStyle().Bold(true).Foreground(p.Good),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(p.Warn),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(p.Bad),
		Gold:  lipgloss.NewStyle().Bold(true).Foreground(p.Gold),
		Text:  lipgloss.NewStyle().Foreground(p.Text),

		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		SelectedRow: lipgloss.NewStyle().Bold(true).Foreground(p.Gold).Background(p.Primary),
		Tab:         lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(p.Gold).Underline(true).Padding(0, 1),
		Modal:       lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(p.Accent).Padding(1, 2),
		Orb:         lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
	}
}

// ForTheme returns the styles for a theme name; anything but "light" is dark.
func ForTheme(theme string) Styles {
	if theme == "light" {
		return NewStyles(LightPalette)
	}
	return NewStyles(DarkPalette)
}

var defaultStyles = NewStyles(DarkPalette)

var (
	Title = defaultStyles.Title
	H2    = defaultStyles.H2
	Muted = defaultStyles.Muted
	Key   = defaultStyles.Key
	Good  = defaultStyles.Good
	Warn  = defaultStyles.Warn
	Bad   = defaultStyles.Bad
	Gold  = defaultStyles.Gold

	BadgeLevelUp = Gold.Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RarityText colours a shop rarity.
func RarityText(rarity string) string {
	switch strings.ToLower(rarity) {
	case "legendary":
		return Gold.Render(rarity)
	case "epic":
		return Title.Render(rarity)
	case "rare":
		return H2.Render(rarity)
	case "uncommon":
		return Good.Render(rarity)
	default:
		return Muted.Render(rarity)
	}
}

func SoundIcon(on bool) string {
	if on {
		return IconSoundOn
	}
	return IconMuted
}

func ThemeIcon(theme string) string {
	if theme == "light" {
		return IconLight
	}
	return IconDark
}

// ProgressBar renders a plain [###---] bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := min(int(float64(value)/float64(total)*float64(width)), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
