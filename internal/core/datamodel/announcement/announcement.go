package announcement

import "time"

type Announcement struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;not null"`
	Type      string    `gorm:"column:type;default:'general'"`
	Priority  string    `gorm:"column:priority;default:'medium'"`
	CreatedBy int64     `gorm:"column:created_by;not null"`
	CompanyID int64     `gorm:"column:company_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Announcement) TableName() string {
	return "announcements"
}
