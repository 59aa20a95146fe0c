package task

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssignedTo  int64     `json:"assigned_to"`
	ProjectID   int64     `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// View is the my-tasks row: the task plus its project name and a progress
// figure derived from status.
type View struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	ProjectName string `json:"projectName"`
	Progress    int    `json:"progress"`
	Assignee    string `json:"assignee"`
}

type Repository interface {
	Create(t *Task) error
	// GetByID is company-scoped through the task's project.
	GetByID(id, companyID int64) (*Task, error)
	ListByAssignee(userID int64) ([]*View, error)
	UpdateStatus(id int64, status string) error
}

// Progress maps a status onto the percentage shown in task lists.
func Progress(status string) int {
	switch status {
	case StatusCompleted:
		return 100
	case StatusInProgress:
		return 50
	default:
		return 0
	}
}
