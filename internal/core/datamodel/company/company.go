package company

import "time"

type Company struct {
	ID               int64     `gorm:"primaryKey"`
	Name             string    `gorm:"column:name;uniqueIndex;not null"`
	SubscriptionPlan string    `gorm:"column:subscription_plan;default:'free'"`
	CreatedAt        time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
