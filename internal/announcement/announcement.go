package announcement

import "time"

const (
	TypeGeneral = "general"
	TypeUrgent  = "urgent"
	TypeEvent   = "event"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	CreatedBy int64     `json:"created_by"`
	CompanyID int64     `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is the list shape with the author resolved to a display name.
type View struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

type Repository interface {
	ListByCompany(companyID int64) ([]*View, error)
	GetByID(id, companyID int64) (*Announcement, error)
	Create(a *Announcement) error
	Update(id, companyID int64, title, content, annType, priority string) error
	Delete(id, companyID int64) error
}
