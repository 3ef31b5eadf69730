// Package speaker plays cue tones on the system audio device through beep.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"mathquest/internal/cue"
)

const sampleRate = beep.SampleRate(44100)

// drainTimeout bounds how long Close waits for queued tones.
const drainTimeout = time.Second

// Player renders tones as sine waves on the default output device.
type Player struct {
	logger  *zap.Logger
	play    func(beep.Streamer)
	release func()

	pending sync.WaitGroup
}

func newPlayer(logger *zap.Logger, play func(beep.Streamer), closeDevice func()) *Player {
	return &Player{logger: logger, play: play, release: closeDevice}
}

// New initializes the speaker. When no audio device can be opened it returns
// cue.Nop so callers never have to check for audio support themselves.
func New(logger *zap.Logger) cue.Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		logger.Info("audio unavailable, cues disabled", zap.Error(err))
		return cue.Nop{}
	}
	return newPlayer(logger, func(s beep.Streamer) { speaker.Play(s) }, speaker.Close)
}

func (p *Player) Play(t cue.Tone) {
	s, err := toneStreamer(t)
	if err != nil {
		p.logger.Debug("tone skipped", zap.Float64("freq", t.Freq), zap.Error(err))
		return
	}
	p.pending.Add(1)
	p.play(beep.Seq(s, beep.Callback(p.pending.Done)))
}

// Close waits for queued tones to finish, up to drainTimeout, then releases
// the device. Short-lived commands call it before exiting.
func (p *Player) Close() error {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		p.logger.Debug("tones still playing at close")
	}
	p.release()
	return nil
}

func toneStreamer(t cue.Tone) (beep.Streamer, error) {
	if t.Duration <= 0 {
		return nil, fmt.Errorf("tone duration must be positive")
	}
	sine, err := generators.SineTone(sampleRate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	// Gain scales by (1 + Gain), so a volume of 0.1 is a gain of -0.9.
	quiet := &effects.Gain{Streamer: sine, Gain: t.Volume - 1}
	return beep.Take(sampleRate.N(t.Duration), quiet), nil
}
