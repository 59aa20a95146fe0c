package task

import "time"

type Task struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;default:'pending'"`
	Priority    string    `gorm:"column:priority;default:'medium'"`
	AssignedTo  int64     `gorm:"column:assigned_to;not null;index"`
	ProjectID   int64     `gorm:"column:project_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Task) TableName() string {
	return "tasks"
}
