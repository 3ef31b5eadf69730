package engine

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"mathquest/internal/storage"
)

// Export returns the record as JSON with the sound preference folded in,
// so one file carries everything.
func (s *Service) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := encodeRecord(s.rec)
	if err != nil {
		return "", err
	}
	out, err := sjson.Set(data, "sound", s.rec.Sound)
	if err != nil {
		return "", fmt.Errorf("export sound: %w", err)
	}
	return sjson.Set(out, "theme", string(s.theme))
}

// Import replaces the record with an exported one. Unlike Load, a payload
// that is not a JSON object is an error.
func (s *Service) Import(ctx context.Context, data string) (Record, error) {
	if !gjson.Valid(data) || !gjson.Parse(data).IsObject() {
		return Record{}, ErrInvalidSave
	}
	rec, derr := decodeRecord(data)
	if derr != nil {
		s.log.Warn("imported record partially unusable", zap.Error(derr))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Sound = s.rec.Sound
	if on, ok := legacySound(data); ok {
		rec.Sound = on
	}
	theme := s.theme
	if t := gjson.Get(data, "theme"); t.Exists() {
		theme = parseThemeValue(t.String())
	}

	enc, err := encodeRecord(rec)
	if err != nil {
		return Record{}, err
	}
	if err := s.kv.SetMany(ctx,
		storage.Entry{Key: SaveKey, Value: enc},
		storage.Entry{Key: SoundKey, Value: soundValue(rec.Sound)},
		storage.Entry{Key: ThemeKey, Value: string(theme)},
	); err != nil {
		return Record{}, err
	}
	s.rec = rec
	s.theme = theme
	s.log.Info("record imported", zap.Int("level", rec.Level), zap.Int("xp", rec.XP))
	return rec.Clone(), nil
}

// Reset wipes progress and the award log. Theme and sound are kept.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, SaveKey, QuestsKey); err != nil {
		return err
	}
	if s.awards != nil {
		if err := s.awards.Clear(ctx); err != nil {
			return err
		}
	}
	sound := s.rec.Sound
	s.rec = DefaultRecord()
	s.rec.Sound = sound
	s.completed = map[int]bool{}
	ApplyStreak(&s.rec, s.Today())
	s.log.Info("record reset")
	return s.persist(ctx)
}
