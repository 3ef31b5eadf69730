package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuest   = errors.New("unknown quest")
	ErrUnknownItem    = errors.New("unknown item")
	ErrQuestCompleted = errors.New("quest already completed")
	ErrAlreadyOwned   = errors.New("item already owned")
	ErrQuizTaken      = errors.New("you already completed today's quiz")
	ErrInvalidChoice  = errors.New("invalid quiz choice")
)

// LevelGateError is returned when a quest needs a higher level than the
// player has. It should be shown to the user.
type LevelGateError struct {
	Quest         string
	RequiredLevel int
	CurrentLevel  int
}

func (e LevelGateError) Error() string {
	return fmt.Sprintf("'%s' requires level %d (currently %d)", e.Quest, e.RequiredLevel, e.CurrentLevel)
}

// InsufficientCoinsError is returned when a purchase costs more than the
// player's balance.
type InsufficientCoinsError struct {
	Item  string
	Cost  int
	Coins int
}

func (e InsufficientCoinsError) Error() string {
	return fmt.Sprintf("not enough coins for %s: costs %d, you have %d", e.Item, e.Cost, e.Coins)
}
