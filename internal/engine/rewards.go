package engine

import (
	"context"
	"fmt"

	"mathquest/internal/cue"
	"mathquest/internal/orb"
)

const (
	sceneXP    = 30
	sceneCoins = 10
)

// SaveScene awards the builder reward. ref names the scene that was saved.
func (s *Service) SaveScene(ctx context.Context, ref string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.rec.Clone()
	out := s.award(sceneXP, sceneCoins)
	if err := s.commit(ctx, prev); err != nil {
		return Outcome{}, err
	}
	s.recordAward(ctx, SourceScene, ref, out)
	s.play(cue.SceneSaved)

	out.Message = fmt.Sprintf("Scene saved! +%d XP", sceneXP)
	return out, nil
}

// FinishRound converts an orb round into XP and coins. Rounds worth no XP
// change nothing, including the best score.
func (s *Service) FinishRound(ctx context.Context, res orb.Result) (Outcome, error) {
	xp, coins := orb.Reward(res.Score)
	msg := fmt.Sprintf("Game over! Score: %d, XP earned: %d", res.Score, xp)
	if xp <= 0 {
		return Outcome{Message: msg, Level: s.Record().Level}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.rec.Clone()
	if res.Score > s.rec.BestScore {
		s.rec.BestScore = res.Score
	}
	out := s.award(xp, coins)
	if err := s.commit(ctx, prev); err != nil {
		return Outcome{}, err
	}
	s.recordAward(ctx, SourceGame, res.RoundID, out)
	s.play(cue.RoundOver)

	out.Message = msg
	return out, nil
}
