package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/auth"
	datamodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/user"
)

// Repository implements auth.RepositoryAPI on GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func toDomain(m *datamodel.User) *auth.User {
	return &auth.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          auth.Role(m.Role),
		CompanyID:     m.CompanyID,
		Phone:         m.Phone,
		Department:    m.Department,
		IsActive:      m.IsActive,
		EmailVerified: m.EmailVerified,
		LastLogin:     m.LastLogin,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		PasswordHash:  m.PasswordHash,
	}
}

// GetByEmailWithPassword loads the principal for credential verification.
// This is the only read path that surfaces the password hash.
func (r *Repository) GetByEmailWithPassword(email string) (*auth.User, error) {
	var m datamodel.User
	if err := r.db.Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var m datamodel.User
	if err := r.db.Where("id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	user := toDomain(&m)
	user.PasswordHash = ""
	return user, nil
}

func (r *Repository) GetByEmail(email string) (*auth.User, error) {
	var m datamodel.User
	if err := r.db.Where("email = ?", email).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	user := toDomain(&m)
	user.PasswordHash = ""
	return user, nil
}

func (r *Repository) Create(user *auth.User, passwordHash string) error {
	m := datamodel.User{
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  passwordHash,
		Role:          string(user.Role),
		CompanyID:     user.CompanyID,
		Phone:         user.Phone,
		Department:    user.Department,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *Repository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Model(&datamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login": at,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repository) UpdatePassword(email string, passwordHash string) error {
	return r.db.Model(&datamodel.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *Repository) MarkEmailVerified(email string) error {
	return r.db.Model(&datamodel.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"email_verified": true,
			"updated_at":     time.Now(),
		}).Error
}
