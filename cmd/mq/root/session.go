package root

import (
	"database/sql"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mathquest/internal/config"
	"mathquest/internal/cue"
	"mathquest/internal/cue/speaker"
	"mathquest/internal/engine"
	"mathquest/internal/logging"
	"mathquest/internal/storage"
	"mathquest/internal/tui"
)

// session is everything a command needs: config, logger, store and a loaded service.
type session struct {
	cfg *config.Config
	log *zap.Logger
	db  *sql.DB
	svc *engine.Service
	cue cue.Player
}

// openSession loads config, opens the store and loads the player record.
// audio opens the sound device; commands that never award skip it.
func openSession(cmd *cobra.Command, audio bool) (*session, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}

	path := cfg.Storage.Path
	if path == "" {
		if path, err = storage.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	var player cue.Player = cue.Nop{}
	if audio && cfg.Audio.Enabled {
		player = speaker.New(logger)
	}

	svc := engine.NewSQLiteService(db, engine.Options{
		Logger:                 logger,
		Cue:                    player,
		Location:               cfg.Location(),
		Rand:                   newRand(cfg.Game.Seed),
		PersistQuestCompletion: cfg.Quests.PersistCompletion,
	})
	if err := svc.Load(ctx); err != nil {
		if c, ok := player.(io.Closer); ok {
			_ = c.Close()
		}
		_ = db.Close()
		return nil, err
	}

	logger.Debug("session opened", zap.String("command", cmd.CommandPath()), zap.String("db", path))
	return &session{cfg: cfg, log: logger, db: db, svc: svc, cue: player}, nil
}

// Close lets queued cues finish before the process exits.
func (s *session) Close() {
	if c, ok := s.cue.(io.Closer); ok {
		_ = c.Close()
	}
	_ = s.db.Close()
	_ = s.log.Sync()
}

func (s *session) tuiOptions(gameTab bool) tui.Options {
	seed := s.cfg.Game.Seed
	if seed != 0 {
		seed++
	}
	return tui.Options{
		PageSize:    s.cfg.Quests.PageSize,
		RoundLength: s.cfg.RoundLength(),
		Rand:        newRand(seed),
		GameTab:     gameTab,
	}
}

// newRand seeds from the config, or from the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>7))
}
