package engine

import (
	"fmt"
	"strings"
)

type QuestType string

const (
	QuestEasy      QuestType = "easy"
	QuestDaily     QuestType = "daily"
	QuestSkill     QuestType = "skill"
	QuestChallenge QuestType = "challenge"
	QuestBoss      QuestType = "boss"
)

// QuestTypes lists the quest types in difficulty order.
var QuestTypes = []QuestType{QuestEasy, QuestDaily, QuestSkill, QuestChallenge, QuestBoss}

const questsPerType = 8

type Quest struct {
	ID       int
	Title    string
	Type     QuestType
	XP       int
	Coins    int
	MinLevel int
}

// Info is the multi-line detail text for a quest.
func (q Quest) Info() string {
	return fmt.Sprintf("%s\nType: %s\nRequires Level %d\nReward: %d XP, %d coins", q.Title, q.Type, q.MinLevel, q.XP, q.Coins)
}

type ShopItem struct {
	ID     int
	Emoji  string
	Name   string
	Rarity string
	Cost   int
}

type QuizQuestion struct {
	ID       int
	Question string
	Options  []string
	Answer   int
}

var (
	questCatalog = buildQuests()

	shopCatalog = []ShopItem{
		{ID: 1, Emoji: "🎩", Name: "Top Hat", Rarity: "common", Cost: 10},
		{ID: 2, Emoji: "😎", Name: "Sunglasses", Rarity: "uncommon", Cost: 20},
		{ID: 3, Emoji: "🦄", Name: "Unicorn Horn", Rarity: "rare", Cost: 50},
		{ID: 4, Emoji: "🐉", Name: "Dragon Pet", Rarity: "legendary", Cost: 100},
		{ID: 5, Emoji: "🧊", Name: "Ice Cape", Rarity: "epic", Cost: 70},
		{ID: 6, Emoji: "💼", Name: "Briefcase", Rarity: "common", Cost: 15},
	}

	quizBank = []QuizQuestion{
		{ID: 1, Question: "What is 7 × 8?", Options: []string{"54", "56", "58"}, Answer: 1},
		{ID: 2, Question: "Solve: 5² + 4² = ?", Options: []string{"41", "25", "9"}, Answer: 0},
		{ID: 3, Question: "Which number is prime?", Options: []string{"15", "21", "17"}, Answer: 2},
		{ID: 4, Question: "Find the derivative of x²", Options: []string{"2x", "x", "x²"}, Answer: 0},
	}
)

func buildQuests() []Quest {
	out := make([]Quest, 0, len(QuestTypes)*questsPerType)
	for i, t := range QuestTypes {
		name := strings.ToUpper(string(t[:1])) + string(t[1:])
		for n := 1; n <= questsPerType; n++ {
			out = append(out, Quest{
				ID:       i*questsPerType + n,
				Title:    fmt.Sprintf("%s Quest %d", name, n),
				Type:     t,
				XP:       20 + i*10,
				Coins:    5 + i*5,
				MinLevel: i + 1,
			})
		}
	}
	return out
}

// Quests returns the quest catalog in id order.
func Quests() []Quest {
	return append([]Quest(nil), questCatalog...)
}

func QuestByID(id int) (Quest, bool) {
	if id < 1 || id > len(questCatalog) {
		return Quest{}, false
	}
	return questCatalog[id-1], true
}

func ShopItems() []ShopItem {
	return append([]ShopItem(nil), shopCatalog...)
}

func ItemByID(id int) (ShopItem, bool) {
	for _, it := range shopCatalog {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

func QuizBank() []QuizQuestion {
	return append([]QuizQuestion(nil), quizBank...)
}

// ParseQuestType parses a type filter. "" and "all" mean no filter.
func ParseQuestType(input string) (QuestType, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" || s == "all" {
		return "", nil
	}
	for _, t := range QuestTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown quest type %q (want all, easy, daily, skill, challenge or boss)", input)
}
