package postgres

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/auth"
	taskmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/task"
	usermodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/user"
	"github.com/o1-spec/techservices-portal/internal/employee"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func toDomain(m *usermodel.User) *employee.Employee {
	status := employee.StatusInactive
	if m.IsActive {
		status = employee.StatusActive
	}
	phone := m.Phone
	if phone == "" {
		phone = employee.DefaultPhone
	}
	department := m.Department
	if department == "" {
		department = employee.DefaultDepartment
	}
	return &employee.Employee{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       auth.Role(m.Role),
		Status:     status,
		Phone:      phone,
		Department: department,
	}
}

// ListByCompany returns the company's staff, excluding Admin accounts.
func (r *Repository) ListByCompany(companyID int64) ([]*employee.Employee, error) {
	var rows []*usermodel.User
	err := r.db.Where("company_id = ? AND role <> ?", companyID, string(auth.RoleAdmin)).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(rows))
	for _, m := range rows {
		employees = append(employees, toDomain(m))
	}
	return employees, nil
}

func (r *Repository) GetByID(id, companyID int64) (*employee.Employee, error) {
	var m usermodel.User
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

// Exists reports whether the user belongs to the company. Consulted before
// team membership and task assignment.
func (r *Repository) Exists(userID, companyID int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(emp *employee.Employee, companyID int64, passwordHash string) error {
	m := usermodel.User{
		Name:         emp.Name,
		Email:        emp.Email,
		PasswordHash: passwordHash,
		Role:         string(emp.Role),
		CompanyID:    companyID,
		Phone:        emp.Phone,
		Department:   emp.Department,
		IsActive:     emp.Status == employee.StatusActive,
		// provisioned accounts verify on first login via the resend flow
		EmailVerified: false,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	emp.ID = m.ID
	return nil
}

func (r *Repository) Update(id, companyID int64, emp *employee.Employee) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Updates(map[string]interface{}{
			"name":       emp.Name,
			"email":      emp.Email,
			"role":       string(emp.Role),
			"is_active":  emp.Status == employee.StatusActive,
			"phone":      emp.Phone,
			"department": emp.Department,
			"updated_at": time.Now(),
		}).Error
}

// Deactivate flips the active flag in one atomic statement; there is no
// read-modify-write window.
func (r *Repository) Deactivate(id, companyID int64) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// GetProfile loads the principal's own account view, filling display
// defaults for records that predate the optional columns.
func (r *Repository) GetProfile(userID int64) (*employee.Profile, error) {
	var m usermodel.User
	if err := r.db.Where("id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}

	phone := m.Phone
	if phone == "" {
		phone = employee.DefaultPhone
	}
	department := m.Department
	if department == "" {
		department = employee.DefaultDepartment
	}
	location := m.Location
	if location == "" {
		location = employee.DefaultLocation
	}

	return &employee.Profile{
		Name:       m.Name,
		Email:      m.Email,
		Phone:      phone,
		Location:   location,
		Bio:        m.Bio,
		Role:       auth.Role(m.Role),
		Department: department,
		JoinDate:   m.CreatedAt.Format("2006-01-02"),
		Avatar:     m.Avatar,
	}, nil
}

// UpdateProfile rewrites the self-editable columns; the password hash is
// only touched when a replacement is supplied.
func (r *Repository) UpdateProfile(userID int64, upd employee.ProfileUpdate) error {
	fields := map[string]interface{}{
		"name":       upd.Name,
		"email":      upd.Email,
		"phone":      upd.Phone,
		"location":   upd.Location,
		"bio":        upd.Bio,
		"updated_at": time.Now(),
	}
	if upd.PasswordHash != "" {
		fields["password_hash"] = upd.PasswordHash
	}
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

// ListUserRefs returns the company's assignment picker rows. An empty role
// means every principal in the company.
func (r *Repository) ListUserRefs(companyID int64, role auth.Role) ([]*employee.UserRef, error) {
	q := r.db.Model(&usermodel.User{}).Where("company_id = ?", companyID)
	if role != "" {
		q = q.Where("role = ?", string(role))
	}

	var rows []*usermodel.User
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]*employee.UserRef, 0, len(rows))
	for _, m := range rows {
		refs = append(refs, &employee.UserRef{
			ID:   m.ID,
			Name: m.Name,
			Role: auth.Role(m.Role),
		})
	}
	return refs, nil
}

// ListTeamMembers returns Employee-role principals with their task counts
// and completion percentage.
func (r *Repository) ListTeamMembers(companyID int64) ([]*employee.TeamMember, error) {
	var rows []*usermodel.User
	err := r.db.Where("company_id = ? AND role = ?", companyID, string(auth.RoleEmployee)).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	team := make([]*employee.TeamMember, 0, len(rows))
	for _, m := range rows {
		var total, completed int64
		if err := r.db.Model(&taskmodel.Task{}).Where("assigned_to = ?", m.ID).Count(&total).Error; err != nil {
			return nil, err
		}
		if err := r.db.Model(&taskmodel.Task{}).Where("assigned_to = ? AND status = ?", m.ID, "completed").Count(&completed).Error; err != nil {
			return nil, err
		}

		performance := 0
		if total > 0 {
			performance = int(math.Round(float64(completed) / float64(total) * 100))
		}

		team = append(team, &employee.TeamMember{
			Employee:       *toDomain(m),
			Performance:    performance,
			TasksCompleted: int(completed),
		})
	}
	return team, nil
}
