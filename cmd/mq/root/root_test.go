package root

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mathquest/internal/engine"
)

type cli struct {
	t      *testing.T
	config string
}

// newCLI points every command at a fresh store in a temp dir with audio off.
func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MATHQUEST_DB", filepath.Join(dir, "mq.db"))
	t.Setenv("MATHQUEST_LOG_FILE", filepath.Join(dir, "mq.log"))
	t.Setenv("MATHQUEST_LOG_LEVEL", "")
	t.Setenv("MATHQUEST_TZ", "")
	t.Setenv("MATHQUEST_AUDIO", "off")
	return &cli{t: t, config: filepath.Join(dir, "config.yaml")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", c.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) exported() gjson.Result {
	c.t.Helper()
	return gjson.Parse(c.mustRun("export"))
}

func TestStatusOnFreshStore(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("status")
	assert.Contains(t, out, "Player Status")
	assert.Contains(t, out, "Streak")
	assert.Contains(t, out, "available")

	save := c.exported()
	assert.Equal(t, int64(1), save.Get("level").Int())
	assert.Equal(t, int64(1), save.Get("streak").Int())
	assert.NotEmpty(t, save.Get("lastSeen").String())
}

func TestQuestDoAwards(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("quest", "do", "1")
	assert.Contains(t, out, "Easy Quest 1 complete! +20 XP, +5 coins")

	save := c.exported()
	assert.Equal(t, int64(20), save.Get("xp").Int())
	assert.Equal(t, int64(5), save.Get("coins").Int())
	assert.Equal(t, int64(1), save.Get("questsCompleted").Int())

	hist := c.mustRun("history")
	assert.Contains(t, hist, "quest")
	assert.Contains(t, hist, "+20 XP")

	assert.Contains(t, c.mustRun("status"), "quest 1, quiz 0, scene 0, game 0")
}

func TestQuestDoLevelGate(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "quest", "do", "9")
	var gate engine.LevelGateError
	require.True(t, errors.As(err, &gate), "got %v", err)
	assert.Equal(t, 2, gate.RequiredLevel)

	_, err = c.run("", "quest", "do", "nope")
	assert.ErrorContains(t, err, "invalid quest id")
}

func TestQuestsSearchSuggests(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("quests", "--search", "chalenge")
	assert.Contains(t, out, "No quests match.")
	assert.Contains(t, out, "challenge")

	out = c.mustRun("quests", "--type", "boss")
	assert.Contains(t, out, "Boss Quest 1")
	assert.Contains(t, out, "Page 1/1 (8 quests)")

	_, err := c.run("", "quests", "--type", "legendary")
	assert.Error(t, err)
}

func TestBuyNeedsCoins(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "buy", "1")
	var short engine.InsufficientCoinsError
	require.True(t, errors.As(err, &short), "got %v", err)
	assert.Equal(t, 10, short.Cost)

	c.mustRun("quest", "do", "1")
	c.mustRun("scene", "save")
	out := c.mustRun("buy", "1")
	assert.Contains(t, out, "Top Hat")

	_, err = c.run("", "buy", "1")
	assert.ErrorIs(t, err, engine.ErrAlreadyOwned)
}

func TestQuizOncePerDay(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("1\n", "quiz")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Daily Quiz")
	assert.True(t, strings.Contains(out, "Correct!") || strings.Contains(out, "Nice try!"), out)

	_, err = c.run("", "quiz", "--answer", "1")
	assert.ErrorIs(t, err, engine.ErrQuizTaken)
}

func TestSceneSave(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("scene", "save", "--slide", "2")
	assert.Contains(t, out, "Scene saved! +30 XP")
	assert.Equal(t, int64(30), c.exported().Get("xp").Int())

	_, err := c.run("", "scene", "save", "--slide", "99")
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("settings", "theme"), "dark")
	assert.Contains(t, c.mustRun("settings", "theme", "light"), "light")
	assert.Contains(t, c.mustRun("settings", "theme"), "light")

	assert.Contains(t, c.mustRun("settings", "sound", "off"), "off")
	sound := c.exported().Get("sound")
	require.True(t, sound.Exists())
	assert.False(t, sound.Bool())

	_, err := c.run("", "settings", "theme", "purple")
	assert.Error(t, err)
}

func TestExportImportReset(t *testing.T) {
	c := newCLI(t)
	c.mustRun("quest", "do", "1")
	path := filepath.Join(t.TempDir(), "save.json")
	c.mustRun("export", "--out", path)

	c.mustRun("reset", "--yes")
	assert.Equal(t, int64(0), c.exported().Get("xp").Int())

	out := c.mustRun("import", path)
	assert.Contains(t, out, "20 XP")
	assert.Equal(t, int64(20), c.exported().Get("xp").Int())

	_, err := c.run("", "reset")
	assert.ErrorContains(t, err, "--yes")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,2]"), 0o644))
	_, err = c.run("", "import", bad)
	assert.ErrorIs(t, err, engine.ErrInvalidSave)
}

func TestLeaderboardAndAchievements(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("leaderboard")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "10. You")

	out = c.mustRun("achievements")
	assert.Contains(t, out, "Achievements (")

	assert.Contains(t, c.mustRun("slides"), "10. ")
}

func TestConfigInit(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("config", "init")
	assert.Contains(t, out, c.config)

	data, err := os.ReadFile(c.config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 8")

	_, err = c.run("", "config", "init")
	assert.ErrorContains(t, err, "--force")
	c.mustRun("config", "init", "--force")

	// The written file loads back and drives the other commands.
	assert.Contains(t, c.mustRun("quests"), "Page 1/5 (40 quests)")
}
