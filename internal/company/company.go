package company

import "time"

// Company is a tenant. Every principal and every resource row belongs to
// exactly one company, and queries are always filtered by it.
type Company struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	SubscriptionPlan string    `json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	FindOrCreate(name string) (int64, error)
	GetByID(id int64) (*Company, error)
}
