package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLevelCurve(t *testing.T) {
	cases := []struct{ xp, level, within, next int }{
		{0, 1, 0, 100},
		{99, 1, 99, 100},
		{100, 2, 0, 200},
		{110, 2, 10, 200},
		{1240, 13, 40, 1300},
	}
	for _, tc := range cases {
		lvl := LevelForXP(tc.xp)
		if lvl != tc.level {
			t.Fatalf("LevelForXP(%d)=%d, want %d", tc.xp, lvl, tc.level)
		}
		if got := ProgressWithinLevel(tc.xp); got != tc.within {
			t.Fatalf("ProgressWithinLevel(%d)=%d, want %d", tc.xp, got, tc.within)
		}
		if got := NextLevelAt(lvl); got != tc.next {
			t.Fatalf("NextLevelAt(%d)=%d, want %d", lvl, got, tc.next)
		}
	}
	if got := ProgressFraction(150); got != 0.5 {
		t.Fatalf("ProgressFraction(150)=%v, want 0.5", got)
	}
	if got := Points(Record{XP: 30, Coins: 12}); got != 42 {
		t.Fatalf("Points=%d, want 42", got)
	}
}

func TestApplyStreak(t *testing.T) {
	cases := []struct {
		name     string
		today    Day
		lastSeen Day
		streak   int
		want     int
	}{
		{"first visit", "2026-03-10", "", 7, 1},
		{"same day", "2026-03-10", "2026-03-10", 4, 4},
		{"next day", "2026-03-10", "2026-03-09", 4, 5},
		{"gap", "2026-03-10", "2026-03-07", 4, 1},
		{"month boundary", "2026-03-01", "2026-02-28", 2, 3},
		{"year boundary", "2027-01-01", "2026-12-31", 6, 7},
		{"ten days away", "2026-03-10", "2026-02-28", 2, 1},
		{"clock went back", "2026-03-10", "2026-03-12", 4, 4},
		{"garbage", "2026-03-10", "yesterday", 4, 4},
	}
	for _, tc := range cases {
		r := Record{LastSeen: tc.lastSeen, Streak: tc.streak}
		ApplyStreak(&r, tc.today)
		if r.Streak != tc.want {
			t.Fatalf("%s: streak=%d, want %d", tc.name, r.Streak, tc.want)
		}
		if r.LastSeen != tc.today {
			t.Fatalf("%s: lastSeen=%q, want %q", tc.name, r.LastSeen, tc.today)
		}
	}
}

func TestStandingsAndRank(t *testing.T) {
	if got := Rank(Record{XP: 0}); got != 10 {
		t.Fatalf("rank at 0 xp=%d, want 10", got)
	}
	if got := Rank(Record{XP: 1240}); got != 2 {
		t.Fatalf("rank tied with leader=%d, want 2", got)
	}
	if got := Rank(Record{XP: 1241}); got != 1 {
		t.Fatalf("rank above leader=%d, want 1", got)
	}

	r := Record{Level: 6, XP: 600}
	first := Standings(r)
	second := Standings(r)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("standings not idempotent (-first +second):\n%s", diff)
	}
	names := make([]string, 0, len(first))
	for _, p := range first {
		names = append(names, p.Name)
	}
	want := []string{"Ada", "Ben", "Chloe", "Dan", "Eli", "You", "Fay", "Gia", "Hugo", "Ivy"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("standings order (-want +got):\n%s", diff)
	}
	if Rank(r) != Rank(r) {
		t.Fatalf("rank not idempotent")
	}
}

func TestAchievementsRecompute(t *testing.T) {
	earned := func(r Record) []string {
		var out []string
		for _, a := range Achievements(r) {
			if a.Earned {
				out = append(out, a.Name)
			}
		}
		return out
	}

	if got := earned(Record{Level: 1, Streak: 1}); len(got) != 0 {
		t.Fatalf("fresh record earned %v", got)
	}

	r := Record{Level: 13, XP: 1250, Coins: 150, Streak: 3, QuestsCompleted: 20, BestScore: 100, Inventory: []int{1, 2, 3}, LastQuiz: "2026-03-10"}
	if got := CountEarned(Achievements(r)); got != 12 {
		t.Fatalf("earned %d achievements, want 12: %v", got, earned(r))
	}

	// Spending coins and dropping out of the top 3 takes the badges away.
	r.Coins = 10
	r.XP = 700
	want := []string{"First Streak", "Quest Novice", "Quiz Master", "Level 5", "High Score 100", "Completer", "Gamer", "Learner", "Shiny", "Shopper"}
	if diff := cmp.Diff(want, earned(r)); diff != "" {
		t.Fatalf("earned (-want +got):\n%s", diff)
	}
}

func TestQuestCatalog(t *testing.T) {
	quests := Quests()
	if len(quests) != 40 {
		t.Fatalf("len=%d, want 40", len(quests))
	}
	want := Quest{ID: 17, Title: "Skill Quest 1", Type: QuestSkill, XP: 40, Coins: 15, MinLevel: 3}
	if diff := cmp.Diff(want, quests[16]); diff != "" {
		t.Fatalf("quest 17 (-want +got):\n%s", diff)
	}
	boss, _ := QuestByID(40)
	if boss.Title != "Boss Quest 8" || boss.XP != 60 || boss.Coins != 25 || boss.MinLevel != 5 {
		t.Fatalf("unexpected boss quest: %+v", boss)
	}
	if len(ShopItems()) != 6 || len(QuizBank()) != 4 {
		t.Fatalf("unexpected catalog sizes")
	}
}
