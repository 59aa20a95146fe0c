package postgres

import (
	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal/auth"
	annmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/announcement"
	projectmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/project"
	taskmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/task"
	usermodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/user"
)

var openTaskStatuses = []string{"pending", "in_progress"}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) count(query *gorm.DB) (int, error) {
	var n int64
	err := query.Count(&n).Error
	return int(n), err
}

func (r *Repository) CountEmployees(companyID int64) (int, error) {
	return r.count(r.db.Model(&usermodel.User{}).Where("company_id = ?", companyID))
}

func (r *Repository) CountTeamMembers(companyID int64) (int, error) {
	return r.count(r.db.Model(&usermodel.User{}).
		Where("company_id = ? AND role = ?", companyID, string(auth.RoleEmployee)))
}

func (r *Repository) CountActiveProjects(companyID int64) (int, error) {
	return r.count(r.db.Model(&projectmodel.Project{}).
		Where("company_id = ? AND status = ?", companyID, "active"))
}

func (r *Repository) CountProjectsByAssignee(companyID, userID int64) (int, error) {
	return r.count(r.db.Model(&projectmodel.Project{}).
		Where("company_id = ? AND assigned_to = ?", companyID, userID))
}

func (r *Repository) CountOpenTasks(companyID int64) (int, error) {
	return r.count(r.db.Model(&taskmodel.Task{}).
		Where("status IN ? AND project_id IN (?)",
			openTaskStatuses,
			r.db.Table("projects").Select("id").Where("company_id = ?", companyID)))
}

// CountTeamTasks counts tasks assigned to the company's Employee-role
// principals.
func (r *Repository) CountTeamTasks(companyID int64) (int, error) {
	return r.count(r.db.Model(&taskmodel.Task{}).
		Where("assigned_to IN (?)",
			r.db.Table("users").Select("id").Where("company_id = ? AND role = ?", companyID, string(auth.RoleEmployee))))
}

func (r *Repository) CountTasksByAssignee(userID int64) (int, error) {
	return r.count(r.db.Model(&taskmodel.Task{}).Where("assigned_to = ?", userID))
}

func (r *Repository) CountCompletedTasksByAssignee(userID int64) (int, error) {
	return r.count(r.db.Model(&taskmodel.Task{}).
		Where("assigned_to = ? AND status = ?", userID, "completed"))
}

func (r *Repository) CountOpenTasksByAssignee(userID int64) (int, error) {
	return r.count(r.db.Model(&taskmodel.Task{}).
		Where("assigned_to = ? AND status IN ?", userID, openTaskStatuses))
}

func (r *Repository) CountAnnouncements(companyID int64) (int, error) {
	return r.count(r.db.Model(&annmodel.Announcement{}).Where("company_id = ?", companyID))
}
