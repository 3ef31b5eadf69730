// Package cue defines the short audio tones played on rewards.
package cue

import "time"

// Tone is a single sine beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64
}

// Player plays tones without blocking the caller.
type Player interface {
	Play(t Tone)
}

var (
	LevelUp     = Tone{Freq: 660, Duration: 200 * time.Millisecond, Volume: 0.1}
	Purchase    = Tone{Freq: 660, Duration: 100 * time.Millisecond, Volume: 0.1}
	QuestDone   = Tone{Freq: 880, Duration: 100 * time.Millisecond, Volume: 0.1}
	QuizCorrect = Tone{Freq: 880, Duration: 200 * time.Millisecond, Volume: 0.1}
	QuizWrong   = Tone{Freq: 440, Duration: 200 * time.Millisecond, Volume: 0.1}
	SceneSaved  = Tone{Freq: 990, Duration: 200 * time.Millisecond, Volume: 0.1}
	RoundOver   = Tone{Freq: 990, Duration: 300 * time.Millisecond, Volume: 0.1}
)

// OrbCatch is the click tone; it climbs with the timing multiplier.
func OrbCatch(multiplier int) Tone {
	return Tone{Freq: 880 + float64(multiplier)*40, Duration: 50 * time.Millisecond, Volume: 0.05}
}

// Nop discards every tone. It is used when no audio device is available.
type Nop struct{}

func (Nop) Play(Tone) {}

// Recorder keeps every tone it is asked to play.
type Recorder struct {
	Tones []Tone
}

func (r *Recorder) Play(t Tone) { r.Tones = append(r.Tones, t) }

// Count returns how many times t was played.
func (r *Recorder) Count(t Tone) int {
	n := 0
	for _, got := range r.Tones {
		if got == t {
			n++
		}
	}
	return n
}
