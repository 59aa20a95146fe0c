package project

import "time"

const (
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
)

type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  int64      `json:"assigned_to"`
	CompanyID   int64      `json:"company_id"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Summary is the list-view shape.
type Summary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Deadline    string `json:"deadline"`
	Team        int    `json:"team"`
	Progress    int    `json:"progress"`
}

// Member is one team entry on the detail view.
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// TaskView is one task row on the detail view.
type TaskView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
}

// Detail is the single-project view: summary plus team and tasks.
type Detail struct {
	Summary
	Team  []Member   `json:"team"`
	Tasks []TaskView `json:"tasks"`
}

// Repository queries are company-scoped; a project outside the caller's
// company does not exist as far as the repository is concerned.
type Repository interface {
	ListByCompany(companyID int64) ([]*Project, error)
	ListByAssignee(companyID, userID int64) ([]*Project, error)
	ListByTaskAssignee(companyID, userID int64) ([]*Project, error)
	GetByID(id, companyID int64) (*Project, error)
	Create(p *Project) error
	Update(id, companyID int64, name, description, status string) error
	Delete(id, companyID int64) error
	AddMember(projectID, userID int64, role string) error
	Team(projectID int64) ([]Member, error)
	TeamSize(projectID int64) (int, error)
	Tasks(projectID int64) ([]TaskView, error)
}

// DeadlineLabel renders the list/detail deadline column. Projects created
// before the deadline column existed fall back to their creation date.
func (p *Project) DeadlineLabel() string {
	if p.Deadline != nil {
		return p.Deadline.Format("2006-01-02")
	}
	return p.CreatedAt.Format("2006-01-02")
}
