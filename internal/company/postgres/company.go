package postgres

import (
	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/company"
	datamodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/company"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate resolves a company name to its id, provisioning the row on
// first sight. The name carries a unique index, so concurrent registrations
// for the same new company converge on one row.
func (r *Repository) FindOrCreate(name string) (int64, error) {
	var m datamodel.Company
	err := r.db.Where("name = ?", name).
		Attrs(datamodel.Company{Name: name, SubscriptionPlan: "free"}).
		FirstOrCreate(&m).Error
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *Repository) GetByID(id int64) (*company.Company, error) {
	var m datamodel.Company
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &company.Company{
		ID:               m.ID,
		Name:             m.Name,
		SubscriptionPlan: m.SubscriptionPlan,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
