package engine

import (
	"context"
	"fmt"
	"strconv"

	"mathquest/internal/cue"
)

// QuestState is a quest as the player currently sees it.
type QuestState struct {
	Quest
	Completed bool
	Unlocked  bool
}

// CanComplete reports whether the complete action is enabled.
func (q QuestState) CanComplete() bool { return q.Unlocked && !q.Completed }

// QuestStates annotates quests with completion and level gating.
func (s *Service) QuestStates(quests []Quest) []QuestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]QuestState, 0, len(quests))
	for _, q := range quests {
		out = append(out, QuestState{
			Quest:     q,
			Completed: s.completed[q.ID],
			Unlocked:  s.rec.Level >= q.MinLevel,
		})
	}
	return out
}

// CompleteQuest awards a quest's XP and coins. The quest must exist, be
// unlocked at the player's level and not already be done this session.
func (s *Service) CompleteQuest(ctx context.Context, id int) (Outcome, error) {
	q, ok := QuestByID(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownQuest, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed[id] {
		return Outcome{}, ErrQuestCompleted
	}
	if s.rec.Level < q.MinLevel {
		return Outcome{}, LevelGateError{Quest: q.Title, RequiredLevel: q.MinLevel, CurrentLevel: s.rec.Level}
	}

	prev := s.rec.Clone()
	s.completed[id] = true
	s.rec.QuestsCompleted++
	out := s.award(q.XP, q.Coins)
	if err := s.commit(ctx, prev); err != nil {
		delete(s.completed, id)
		return Outcome{}, err
	}
	s.recordAward(ctx, SourceQuest, strconv.Itoa(id), out)
	s.play(cue.QuestDone)

	out.Message = fmt.Sprintf("%s complete! +%d XP, +%d coins", q.Title, q.XP, q.Coins)
	return out, nil
}
