package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnnouncementCreated = "announcement.created"
)

func NewAnnouncementCreatedEvent(announcementID, companyID, authorID int64, title string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      AnnouncementCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"announcement_id": announcementID,
			"company_id":      companyID,
			"author_id":       authorID,
			"title":           title,
		},
	}
}
