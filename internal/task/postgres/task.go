package postgres

import (
	"time"

	"gorm.io/gorm"

	taskmodel "github.com/o1-spec/techservices-portal/internal/core/datamodel/task"
	"github.com/o1-spec/techservices-portal/internal/task"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(t *task.Task) error {
	m := taskmodel.Task{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		ProjectID:   t.ProjectID,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	t.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID anchors tenant scope on the task's project: a task under another
// company's project is not found.
func (r *Repository) GetByID(id, companyID int64) (*task.Task, error) {
	var m taskmodel.Task
	err := r.db.Where("tasks.id = ? AND project_id IN (?)",
		id,
		r.db.Table("projects").Select("id").Where("company_id = ?", companyID),
	).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &task.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Priority:    m.Priority,
		AssignedTo:  m.AssignedTo,
		ProjectID:   m.ProjectID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *Repository) ListByAssignee(userID int64) ([]*task.View, error) {
	type row struct {
		ID          int64
		Title       string
		Description string
		Status      string
		Priority    string
		CreatedAt   time.Time
		ProjectName string
	}

	var rows []row
	err := r.db.Table("tasks").
		Select("tasks.id, tasks.title, tasks.description, tasks.status, tasks.priority, tasks.created_at, projects.name AS project_name").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.assigned_to = ?", userID).
		Order("tasks.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]*task.View, 0, len(rows))
	for _, rw := range rows {
		projectName := rw.ProjectName
		if projectName == "" {
			projectName = "Unknown"
		}
		views = append(views, &task.View{
			ID:          rw.ID,
			Title:       rw.Title,
			Description: rw.Description,
			Status:      rw.Status,
			Priority:    rw.Priority,
			DueDate:     rw.CreatedAt.Format("2006-01-02"),
			ProjectName: projectName,
		})
	}
	return views, nil
}

func (r *Repository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&taskmodel.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
