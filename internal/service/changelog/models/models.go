package models

import (
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// EntryResponse запись журнала изменений
type EntryResponse struct {
	ID        int64                  `json:"id"`
	Model     string                 `json:"model"`
	RecordID  int64                  `json:"recordId"`
	Action    string                 `json:"action"`
	ActorID   int64                  `json:"actorId"`
	Changes   map[string]interface{} `json:"changes"`
	CreatedAt time.Time              `json:"createdAt"`
}

// FromDomainEntries конвертирует записи журнала в response
func FromDomainEntries(entries []*domain.ChangeLogEntry) []EntryResponse {
	result := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, EntryResponse{
			ID:        e.ID,
			Model:     e.Model,
			RecordID:  e.RecordID,
			Action:    string(e.Action),
			ActorID:   e.ActorID,
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		})
	}
	return result
}
