package engine

// Achievement is a badge derived from the current record. Nothing about it is
// stored; Earned is recomputed every time.
type Achievement struct {
	ID     int
	Icon   string
	Name   string
	Earned bool
}

type achievementRule struct {
	id    int
	icon  string
	name  string
	check func(r Record, rank int) bool
}

var achievementRules = []achievementRule{
	{1, "🔥", "First Streak", func(r Record, _ int) bool { return r.Streak >= 3 }},
	{2, "💪", "Quest Novice", func(r Record, _ int) bool { return r.QuestsCompleted >= 5 }},
	{3, "🎓", "Quiz Master", func(r Record, _ int) bool { return !r.LastQuiz.IsZero() }},
	{4, "🏆", "Top 3", func(_ Record, rank int) bool { return rank <= 3 }},
	{5, "🚀", "Level 5", func(r Record, _ int) bool { return r.Level >= 5 }},
	{6, "💎", "Rich", func(r Record, _ int) bool { return r.Coins >= 100 }},
	{7, "🎯", "High Score 100", func(r Record, _ int) bool { return r.BestScore >= 100 }},
	{8, "🏅", "Completer", func(r Record, _ int) bool { return r.QuestsCompleted >= 20 }},
	{9, "🎮", "Gamer", func(r Record, _ int) bool { return r.BestScore >= 50 }},
	{10, "🧠", "Learner", func(r Record, _ int) bool { return r.XP >= 500 }},
	{11, "⭐", "Shiny", func(r Record, _ int) bool { return len(r.Inventory) >= 1 }},
	{12, "🪙", "Shopper", func(r Record, _ int) bool { return len(r.Inventory) >= 3 }},
}

// Achievements evaluates every achievement against r.
func Achievements(r Record) []Achievement {
	rank := Rank(r)
	out := make([]Achievement, 0, len(achievementRules))
	for _, a := range achievementRules {
		out = append(out, Achievement{ID: a.id, Icon: a.icon, Name: a.name, Earned: a.check(r, rank)})
	}
	return out
}

// CountEarned returns how many achievements in list have been earned.
func CountEarned(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Earned {
			n++
		}
	}
	return n
}
