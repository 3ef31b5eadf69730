package storage

import "time"

// Entry is a single key/value pair in the kv table.
type Entry struct {
	Key   string
	Value string
}

// Award is one row of the award log.
type Award struct {
	ID        int64
	Source    string
	Ref       string
	XP        int
	Coins     int
	AwardedAt time.Time
}
