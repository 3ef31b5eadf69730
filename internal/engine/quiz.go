package engine

import (
	"context"
	"fmt"
	"strconv"

	"mathquest/internal/cue"
)

const (
	quizCorrectXP    = 40
	quizCorrectCoins = 5
	quizWrongXP      = 10
	quizWrongCoins   = 1
)

// QuizAvailable reports whether today's quiz has not been taken yet.
func (s *Service) QuizAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.LastQuiz != s.Today()
}

// OpenQuiz draws a random question, or returns ErrQuizTaken when today's
// attempt is already used.
func (s *Service) OpenQuiz() (QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.LastQuiz == s.Today() {
		return QuizQuestion{}, ErrQuizTaken
	}
	return quizBank[s.rng.IntN(len(quizBank))], nil
}

// AnswerQuiz scores the answer to q. Right or wrong, it uses up today's
// attempt.
func (s *Service) AnswerQuiz(ctx context.Context, q QuizQuestion, choice int) (Outcome, error) {
	if choice < 0 || choice >= len(q.Options) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	if s.rec.LastQuiz == today {
		return Outcome{}, ErrQuizTaken
	}

	correct := choice == q.Answer
	xp, coins, tone, msg := quizWrongXP, quizWrongCoins, cue.QuizWrong, fmt.Sprintf("Nice try! +%d XP", quizWrongXP)
	if correct {
		xp, coins, tone, msg = quizCorrectXP, quizCorrectCoins, cue.QuizCorrect, fmt.Sprintf("Correct! +%d XP", quizCorrectXP)
	}

	prev := s.rec.Clone()
	s.rec.LastQuiz = today
	out := s.award(xp, coins)
	if err := s.commit(ctx, prev); err != nil {
		return Outcome{}, err
	}
	s.recordAward(ctx, SourceQuiz, strconv.Itoa(q.ID), out)
	s.play(tone)

	out.Message = msg
	return out, nil
}
