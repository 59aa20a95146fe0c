package postgres

import (
	"time"

	"gorm.io/gorm"

	projectmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/project"
	"github.com/o1-spec/techservices-portal/internal/project"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func toDomain(m *projectmodel.Project) *project.Project {
	return &project.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
		AssignedTo:  m.AssignedTo,
		CompanyID:   m.CompanyID,
		Deadline:    m.Deadline,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainSlice(rows []*projectmodel.Project) []*project.Project {
	out := make([]*project.Project, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomain(m))
	}
	return out
}

func (r *Repository) ListByCompany(companyID int64) ([]*project.Project, error) {
	var rows []*projectmodel.Project
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

func (r *Repository) ListByAssignee(companyID, userID int64) ([]*project.Project, error) {
	var rows []*projectmodel.Project
	err := r.db.Where("company_id = ? AND assigned_to = ?", companyID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

// ListByTaskAssignee returns the projects containing at least one task
// assigned to the user.
func (r *Repository) ListByTaskAssignee(companyID, userID int64) ([]*project.Project, error) {
	var rows []*projectmodel.Project
	err := r.db.Where("company_id = ? AND id IN (?)",
		companyID,
		r.db.Table("tasks").Select("DISTINCT project_id").Where("assigned_to = ?", userID),
	).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

// Exists is the lightweight tenancy check used before attaching tasks.
func (r *Repository) Exists(projectID, companyID int64) (bool, error) {
	var count int64
	err := r.db.Model(&projectmodel.Project{}).
		Where("id = ? AND company_id = ?", projectID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) GetByID(id, companyID int64) (*project.Project, error) {
	var m projectmodel.Project
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) Create(p *project.Project) error {
	m := projectmodel.Project{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		AssignedTo:  p.AssignedTo,
		CompanyID:   p.CompanyID,
		Deadline:    p.Deadline,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *Repository) Update(id, companyID int64, name, description, status string) error {
	return r.db.Model(&projectmodel.Project{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"status":      status,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repository) Delete(id, companyID int64) error {
	return r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&projectmodel.Project{}).Error
}

func (r *Repository) AddMember(projectID, userID int64, role string) error {
	return r.db.Create(&projectmodel.TeamMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}).Error
}

func (r *Repository) Team(projectID int64) ([]project.Member, error) {
	var members []project.Member
	err := r.db.Table("project_members").
		Select("users.id AS id, users.name AS name, project_members.role AS role").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) TeamSize(projectID int64) (int, error) {
	var count int64
	err := r.db.Model(&projectmodel.TeamMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return int(count), err
}

func (r *Repository) Tasks(projectID int64) ([]project.TaskView, error) {
	var tasks []project.TaskView
	err := r.db.Table("tasks").
		Select("tasks.id AS id, tasks.title AS title, tasks.status AS status, users.name AS assignee").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.project_id = ?", projectID).
		Scan(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
