package engine

import "sort"

// YouName is the leaderboard name of the local player.
const YouName = "You"

type Player struct {
	Name  string
	Level int
	XP    int
	You   bool
}

var sampleRoster = []Player{
	{Name: "Ada", Level: 12, XP: 1240},
	{Name: "Ben", Level: 10, XP: 985},
	{Name: "Chloe", Level: 8, XP: 812},
	{Name: "Dan", Level: 7, XP: 710},
	{Name: "Eli", Level: 6, XP: 622},
	{Name: "Fay", Level: 5, XP: 540},
	{Name: "Gia", Level: 4, XP: 380},
	{Name: "Hugo", Level: 3, XP: 245},
	{Name: "Ivy", Level: 2, XP: 130},
}

// Standings is the roster plus the local player, best XP first. The local
// player is appended last and the sort is stable, so ties rank below.
func Standings(r Record) []Player {
	players := make([]Player, 0, len(sampleRoster)+1)
	players = append(players, sampleRoster...)
	players = append(players, Player{Name: YouName, Level: r.Level, XP: r.XP, You: true})
	sort.SliceStable(players, func(i, j int) bool { return players[i].XP > players[j].XP })
	return players
}

// Rank is the 1-based leaderboard position of the local player.
func Rank(r Record) int {
	for i, p := range Standings(r) {
		if p.You {
			return i + 1
		}
	}
	return len(sampleRoster) + 1
}
