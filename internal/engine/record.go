package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Keys in the key/value store.
const (
	SaveKey   = "mathquest:save:v1"
	ThemeKey  = "mathquest:theme"
	SoundKey  = "mathquest:sound"
	QuestsKey = "mathquest:quests"
)

// ErrInvalidSave is returned by Import for payloads that are not a JSON object.
var ErrInvalidSave = errors.New("save data is not a JSON object")

// Record is the player's persisted progression.
type Record struct {
	Level           int   `json:"level"`
	XP              int   `json:"xp"`
	Coins           int   `json:"coins"`
	QuestsCompleted int   `json:"questsCompleted"`
	Streak          int   `json:"streak"`
	LastSeen        Day   `json:"lastSeen"`
	BestScore       int   `json:"bestScore"`
	Inventory       []int `json:"inventory"`
	LastQuiz        Day   `json:"lastQuiz"`

	// Sound lives under SoundKey, not in the record.
	Sound bool `json:"-"`
}

func DefaultRecord() Record {
	return Record{
		Level:     1,
		Streak:    1,
		Inventory: []int{},
		Sound:     true,
	}
}

func (r Record) Clone() Record {
	out := r
	out.Inventory = slices.Clone(r.Inventory)
	if out.Inventory == nil {
		out.Inventory = []int{}
	}
	return out
}

// Owns reports whether the item id is in the inventory.
func (r Record) Owns(itemID int) bool {
	return slices.Contains(r.Inventory, itemID)
}

// decodeRecord turns a stored payload into a Record. It always returns a
// usable record: defaults when the payload is unusable, otherwise the stored
// fields merged over defaults. The error, when set, is only worth a log line.
func decodeRecord(raw string) (Record, error) {
	rec := DefaultRecord()
	if !gjson.Valid(raw) {
		return rec, errors.New("save record is not valid JSON")
	}
	if !gjson.Parse(raw).IsObject() {
		return rec, ErrInvalidSave
	}

	migrated, err := migrateRecord(raw)
	if err != nil {
		return rec, err
	}

	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal([]byte(migrated), &rec); err != nil {
		if !errors.As(err, &typeErr) {
			return DefaultRecord(), fmt.Errorf("save record decode: %w", err)
		}
		// Mistyped fields keep their defaults; the rest is still good.
		rec.normalize()
		return rec, fmt.Errorf("save record field %q: %w", typeErr.Field, err)
	}
	rec.normalize()
	return rec, nil
}

// migrateRecord rewrites older payloads into the current shape.
func migrateRecord(raw string) (string, error) {
	out := raw
	var err error
	if gjson.Get(out, "sound").Exists() {
		if out, err = sjson.Delete(out, "sound"); err != nil {
			return raw, fmt.Errorf("migrate sound: %w", err)
		}
	}
	if inv := gjson.Get(out, "inventory"); inv.Exists() && !inv.IsArray() {
		if out, err = sjson.Delete(out, "inventory"); err != nil {
			return raw, fmt.Errorf("migrate inventory: %w", err)
		}
	}
	return out, nil
}

// legacySound reads the sound flag older saves kept inside the record.
func legacySound(raw string) (on bool, ok bool) {
	v := gjson.Get(raw, "sound")
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	default:
		return false, false
	}
}

func (r *Record) normalize() {
	r.XP = max(r.XP, 0)
	r.Coins = max(r.Coins, 0)
	r.QuestsCompleted = max(r.QuestsCompleted, 0)
	r.BestScore = max(r.BestScore, 0)
	if r.Streak < 1 {
		r.Streak = 1
	}
	r.Level = LevelForXP(r.XP)

	inv := make([]int, 0, len(r.Inventory))
	for _, id := range r.Inventory {
		if _, ok := ItemByID(id); !ok || slices.Contains(inv, id) {
			continue
		}
		inv = append(inv, id)
	}
	r.Inventory = inv
}

func encodeRecord(r Record) (string, error) {
	r = r.Clone()
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("save record encode: %w", err)
	}
	return string(b), nil
}
