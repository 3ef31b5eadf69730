package cue

import "testing"

func TestOrbCatchClimbsWithMultiplier(t *testing.T) {
	if OrbCatch(5).Freq <= OrbCatch(1).Freq {
		t.Fatalf("expected higher pitch for bigger multiplier")
	}
	if got := OrbCatch(2).Freq; got != 960 {
		t.Fatalf("OrbCatch(2).Freq=%v, want 960", got)
	}
}

func TestRecorderCount(t *testing.T) {
	var r Recorder
	r.Play(LevelUp)
	r.Play(QuestDone)
	r.Play(LevelUp)
	if got := r.Count(LevelUp); got != 2 {
		t.Fatalf("Count(LevelUp)=%d, want 2", got)
	}
	if got := r.Count(QuizWrong); got != 0 {
		t.Fatalf("Count(QuizWrong)=%d, want 0", got)
	}
}
