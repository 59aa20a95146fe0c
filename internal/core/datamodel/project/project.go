package project

import "time"

type Project struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description;not null"`
	Status      string     `gorm:"column:status;default:'active'"`
	AssignedTo  int64      `gorm:"column:assigned_to;not null;index"`
	CompanyID   int64      `gorm:"column:company_id;not null;index"`
	Deadline    *time.Time `gorm:"column:deadline"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Project) TableName() string {
	return "projects"
}

// TeamMember is a row in a project's team roster.
type TeamMember struct {
	ID        int64     `gorm:"primaryKey"`
	ProjectID int64     `gorm:"column:project_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Role      string    `gorm:"column:role;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (TeamMember) TableName() string {
	return "project_members"
}
