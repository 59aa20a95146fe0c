package dashboard

// Stats is the role-shaped dashboard payload. Only the fields relevant to
// the caller's role are populated; the rest are omitted from the response.
type Stats struct {
	Employees     *int `json:"employees,omitempty"`
	TeamMembers   *int `json:"teamMembers,omitempty"`
	Projects      *int `json:"projects,omitempty"`
	Tasks         *int `json:"tasks,omitempty"`
	MyTasks       *int `json:"myTasks,omitempty"`
	Performance   *int `json:"performance,omitempty"`
	Announcements *int `json:"announcements,omitempty"`
}

// Columns flattens the populated fields in a stable order for export.
func (s *Stats) Columns() ([]string, []int) {
	var headers []string
	var values []int

	add := func(name string, v *int) {
		if v != nil {
			headers = append(headers, name)
			values = append(values, *v)
		}
	}

	add("employees", s.Employees)
	add("teamMembers", s.TeamMembers)
	add("projects", s.Projects)
	add("tasks", s.Tasks)
	add("myTasks", s.MyTasks)
	add("performance", s.Performance)
	add("announcements", s.Announcements)

	return headers, values
}

// Repository exposes the count queries behind the dashboard. Every count is
// company-scoped; tasks reach their company through their project.
type Repository interface {
	CountEmployees(companyID int64) (int, error)
	CountTeamMembers(companyID int64) (int, error)
	CountActiveProjects(companyID int64) (int, error)
	CountProjectsByAssignee(companyID, userID int64) (int, error)
	CountOpenTasks(companyID int64) (int, error)
	CountTeamTasks(companyID int64) (int, error)
	CountTasksByAssignee(userID int64) (int, error)
	CountCompletedTasksByAssignee(userID int64) (int, error)
	CountOpenTasksByAssignee(userID int64) (int, error)
	CountAnnouncements(companyID int64) (int, error)
}
