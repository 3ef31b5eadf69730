package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"mathquest/internal/cue"
	"mathquest/internal/storage"
)

// KV is the persistence boundary for the record and preferences.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, entries ...storage.Entry) error
	Delete(ctx context.Context, keys ...string) error
}

// AwardLog records every XP/coin award.
type AwardLog interface {
	Insert(ctx context.Context, source, ref string, xp, coins int, awardedAt time.Time) (int64, error)
	Recent(ctx context.Context, limit int) ([]storage.Award, error)
	CountSince(ctx context.Context, source string, since time.Time) (int, error)
	Clear(ctx context.Context) error
}

// Award sources in the log.
const (
	SourceQuest = "quest"
	SourceQuiz  = "quiz"
	SourceScene = "scene"
	SourceGame  = "game"
)

// AwardSources lists the award log sources in display order.
var AwardSources = []string{SourceQuest, SourceQuiz, SourceScene, SourceGame}

type Options struct {
	Logger   *zap.Logger
	Cue      cue.Player
	Now      func() time.Time
	Location *time.Location
	Rand     *rand.Rand

	// PersistQuestCompletion stores completed quest ids under QuestsKey.
	// When false, completion lasts only for the session.
	PersistQuestCompletion bool
}

// Outcome describes an award that was applied.
type Outcome struct {
	XP        int
	Coins     int
	Level     int
	LeveledUp bool
	Message   string
}

// Service owns the in-memory record and is the only thing that mutates it.
// Every mutation is followed by a write of the whole record.
type Service struct {
	mu sync.Mutex

	kv     KV
	awards AwardLog
	log    *zap.Logger
	cue    cue.Player
	now    func() time.Time
	loc    *time.Location
	rng    *rand.Rand

	persistQuests bool

	rec       Record
	theme     Theme
	completed map[int]bool
}

func NewService(kv KV, awards AwardLog, opts Options) *Service {
	s := &Service{
		kv:            kv,
		awards:        awards,
		log:           opts.Logger,
		cue:           opts.Cue,
		now:           opts.Now,
		loc:           opts.Location,
		rng:           opts.Rand,
		persistQuests: opts.PersistQuestCompletion,
		rec:           DefaultRecord(),
		theme:         ThemeDark,
		completed:     map[int]bool{},
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.cue == nil {
		s.cue = cue.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>7))
	}
	return s
}

// NewSQLiteService wires a Service to the kv and award_log tables of db.
func NewSQLiteService(db *sql.DB, opts Options) *Service {
	return NewService(storage.NewKVRepo(db), storage.NewAwardRepo(db), opts)
}

// Today is the current calendar day in the configured location.
func (s *Service) Today() Day {
	return DayOf(s.now(), s.loc)
}

// Load reads the record and preferences, applies the daily streak and saves
// once so lastSeen is persisted. A corrupt record falls back to defaults.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, SaveKey)
	if err != nil {
		return err
	}
	rec := DefaultRecord()
	if ok {
		var derr error
		rec, derr = decodeRecord(raw)
		if derr != nil {
			s.log.Warn("save record unusable, using defaults where needed", zap.Error(derr))
		}
	}

	sound, ok, err := s.kv.Get(ctx, SoundKey)
	if err != nil {
		return err
	}
	if ok {
		rec.Sound = sound != "off"
	} else if on, legacy := legacySound(raw); legacy {
		// The record is about to be rewritten without it.
		rec.Sound = on
		if err := s.kv.Set(ctx, SoundKey, soundValue(on)); err != nil {
			return err
		}
	}

	theme, _, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return err
	}
	s.theme = parseThemeValue(theme)

	s.completed = map[int]bool{}
	if s.persistQuests {
		if err := s.loadCompleted(ctx); err != nil {
			return err
		}
	}

	ApplyStreak(&rec, s.Today())
	s.rec = rec
	s.log.Info("record loaded",
		zap.Int("level", rec.Level),
		zap.Int("xp", rec.XP),
		zap.Int("streak", rec.Streak),
		zap.String("last_seen", string(rec.LastSeen)),
	)
	return s.persist(ctx)
}

func (s *Service) loadCompleted(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, QuestsKey)
	if err != nil || !ok {
		return err
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("completed quests unreadable, starting fresh", zap.Error(err))
		return nil
	}
	for _, id := range ids {
		if _, ok := QuestByID(id); ok {
			s.completed[id] = true
		}
	}
	return nil
}

// Save writes the whole record.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

func (s *Service) persist(ctx context.Context) error {
	data, err := encodeRecord(s.rec)
	if err != nil {
		return err
	}
	entries := []storage.Entry{{Key: SaveKey, Value: data}}
	if s.persistQuests {
		ids := make([]int, 0, len(s.completed))
		for id := range s.completed {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		b, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("completed quests encode: %w", err)
		}
		entries = append(entries, storage.Entry{Key: QuestsKey, Value: string(b)})
	}
	return s.kv.SetMany(ctx, entries...)
}

// commit persists the current record, restoring prev when the write fails.
func (s *Service) commit(ctx context.Context, prev Record) error {
	if err := s.persist(ctx); err != nil {
		s.rec = prev
		return err
	}
	return nil
}

// Record returns a copy of the current record.
func (s *Service) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// award adds xp and coins and runs the level check.
func (s *Service) award(xp, coins int) Outcome {
	s.rec.XP += xp
	s.rec.Coins += coins
	up := s.levelCheck()
	return Outcome{XP: xp, Coins: coins, Level: s.rec.Level, LeveledUp: up}
}

// recordAward runs once an award is committed. It plays the level-up cue
// when the level rose and writes the award log. A failed insert only costs
// a history line, so it is logged and dropped.
func (s *Service) recordAward(ctx context.Context, source, ref string, out Outcome) {
	if out.LeveledUp {
		s.play(cue.LevelUp)
	}
	s.log.Info("award",
		zap.String("source", source),
		zap.String("ref", ref),
		zap.Int("xp", out.XP),
		zap.Int("coins", out.Coins),
		zap.Int("level", out.Level),
	)
	if s.awards == nil {
		return
	}
	if _, err := s.awards.Insert(ctx, source, ref, out.XP, out.Coins, s.now().UTC()); err != nil {
		s.log.Warn("award log insert failed", zap.String("source", source), zap.Error(err))
	}
}

// levelCheck raises the level to match XP and reports whether it changed.
// Levels never go down.
func (s *Service) levelCheck() bool {
	lvl := LevelForXP(s.rec.XP)
	if lvl <= s.rec.Level {
		return false
	}
	s.rec.Level = lvl
	return true
}

func (s *Service) play(t cue.Tone) {
	if s.rec.Sound {
		s.cue.Play(t)
	}
}

// PlayCue plays t when sound is on. The orb game uses it for catch tones.
func (s *Service) PlayCue(t cue.Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.play(t)
}

// History returns the newest awards first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.Award, error) {
	if s.awards == nil {
		return nil, nil
	}
	return s.awards.Recent(ctx, limit)
}

// AwardCounts returns how many awards each source logged at or after since.
func (s *Service) AwardCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	counts := make(map[string]int, len(AwardSources))
	if s.awards == nil {
		return counts, nil
	}
	for _, src := range AwardSources {
		n, err := s.awards.CountSince(ctx, src, since.UTC())
		if err != nil {
			return nil, err
		}
		counts[src] = n
	}
	return counts, nil
}
