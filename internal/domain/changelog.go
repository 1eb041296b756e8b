package domain

import "time"

// ChangeAction describes what happened to a record
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeLogEntry is one append-only audit record.
type ChangeLogEntry struct {
	ID        int64
	Model     string
	RecordID  int64
	Action    ChangeAction
	ActorID   int64 // 0 for system sweeps
	Changes   map[string]interface{}
	CreatedAt time.Time
}
