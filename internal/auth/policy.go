package auth

import (
	"github.com/o1-spec/techservices-portal/internal"
)

type Resource string

const (
	ResourceEmployees     Resource = "employees"
	ResourceProjects      Resource = "projects"
	ResourceProjectTeam   Resource = "project-team"
	ResourceTasks         Resource = "tasks"
	ResourceAnnouncements Resource = "announcements"
	ResourceMyTeam        Resource = "my-team"
	ResourceDashboard     Resource = "dashboard"
	ResourceUsers         Resource = "users"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Policy is the single authorization table consulted by every protected
// handler. The route files do not re-derive role checks; they ask here.
type Policy struct {
	rules map[Resource]map[Action][]Role
}

// NewPolicy builds the role matrix:
//
//	employees      read/create/update/delete  Admin
//	projects       create/update              Admin, Manager
//	projects       delete                     Admin
//	project team   create                     Admin, Manager
//	tasks          create                     Admin, Manager
//	announcements  read                       everyone
//	announcements  create/update/delete       Admin, Manager
//	my-team        read                       Manager
//	dashboard      read                       everyone
//	users          read                       Admin, Manager
//
// Project and task reads are scope-shaped rather than role-gated and are
// expressed by ProjectScope / the ownership helpers below.
func NewPolicy() *Policy {
	adminOnly := []Role{RoleAdmin}
	adminOrManager := []Role{RoleAdmin, RoleManager}
	everyone := []Role{RoleAdmin, RoleManager, RoleEmployee}

	return &Policy{
		rules: map[Resource]map[Action][]Role{
			ResourceEmployees: {
				ActionRead:   adminOnly,
				ActionCreate: adminOnly,
				ActionUpdate: adminOnly,
				ActionDelete: adminOnly,
			},
			ResourceProjects: {
				ActionRead:   everyone,
				ActionCreate: adminOrManager,
				ActionUpdate: adminOrManager,
				ActionDelete: adminOnly,
			},
			ResourceProjectTeam: {
				ActionCreate: adminOrManager,
			},
			ResourceTasks: {
				ActionRead:   everyone,
				ActionCreate: adminOrManager,
			},
			ResourceAnnouncements: {
				ActionRead:   everyone,
				ActionCreate: adminOrManager,
				ActionUpdate: adminOrManager,
				ActionDelete: adminOrManager,
			},
			ResourceMyTeam: {
				ActionRead: {RoleManager},
			},
			ResourceDashboard: {
				ActionRead: everyone,
			},
			ResourceUsers: {
				ActionRead: adminOrManager,
			},
		},
	}
}

func (p *Policy) Can(role Role, resource Resource, action Action) bool {
	actions, ok := p.rules[resource]
	if !ok {
		return false
	}
	allowed, ok := actions[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns a generic forbidden error on denial. The reason is
// deliberately not surfaced to the caller.
func (p *Policy) Authorize(identity *Identity, resource Resource, action Action) error {
	if identity == nil {
		return internal.ErrForbidden
	}
	if !p.Can(identity.Role, resource, action) {
		return internal.ErrForbidden
	}
	return nil
}

// ProjectScope describes which projects a principal's list query may see.
// All variants are additionally company-scoped by the repository.
type ProjectScope int

const (
	// ScopeCompany: every project in the principal's company.
	ScopeCompany ProjectScope = iota
	// ScopeAssigned: projects where the principal is the assignee.
	ScopeAssigned
	// ScopeTasked: projects containing a task assigned to the principal.
	ScopeTasked
)

func (p *Policy) ProjectScopeFor(identity *Identity) ProjectScope {
	switch identity.Role {
	case RoleAdmin:
		return ScopeCompany
	case RoleManager:
		return ScopeAssigned
	default:
		return ScopeTasked
	}
}

// CanViewProject gates the project detail view: admins see any project in
// their company, others only projects assigned to them.
func (p *Policy) CanViewProject(identity *Identity, assignedTo int64) bool {
	if identity.Role == RoleAdmin {
		return true
	}
	return identity.ID == assignedTo
}

// CanUpdateTaskStatus allows the task's assignee plus Admin/Manager.
func (p *Policy) CanUpdateTaskStatus(identity *Identity, assignedTo int64) bool {
	if identity.IsAdminOrManager() {
		return true
	}
	return identity.ID == assignedTo
}
