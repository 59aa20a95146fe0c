package employee

import (
	"github.com/o1-spec/techservices-portal/internal/auth"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Fallbacks shown when an employee record predates the phone/department
// columns.
const (
	DefaultPhone      = "+1 (555) 000-0000"
	DefaultDepartment = "Engineering"
	DefaultLocation   = "Not specified"
)

type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       auth.Role `json:"role"`
	Status     string    `json:"status"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
}

// TeamMember is the my-team view: an Employee-role principal plus task
// completion figures for their manager.
type TeamMember struct {
	Employee
	Performance    int `json:"performance"`
	TasksCompleted int `json:"tasksCompleted"`
}

// Profile is the self-service account view: contact and bio fields plus the
// formatted join date.
type Profile struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Location   string    `json:"location"`
	Bio        string    `json:"bio"`
	Role       auth.Role `json:"role"`
	Department string    `json:"department"`
	JoinDate   string    `json:"joinDate"`
	Avatar     *string   `json:"avatar"`
}

// ProfileUpdate carries the self-editable fields. An empty PasswordHash
// leaves the credential untouched.
type ProfileUpdate struct {
	Name         string
	Email        string
	Phone        string
	Location     string
	Bio          string
	PasswordHash string
}

// UserRef is the assignment-picker row: just enough to populate a dropdown.
type UserRef struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Role auth.Role `json:"role"`
}

// Repository is company-scoped by construction: every query carries the
// acting principal's company id, so out-of-tenant rows are simply absent.
// The profile methods are the exception: they operate on the acting
// principal's own row by id.
type Repository interface {
	ListByCompany(companyID int64) ([]*Employee, error)
	GetByID(id, companyID int64) (*Employee, error)
	EmailExists(email string) (bool, error)
	Create(emp *Employee, companyID int64, passwordHash string) error
	Update(id, companyID int64, emp *Employee) error
	Deactivate(id, companyID int64) error
	ListTeamMembers(companyID int64) ([]*TeamMember, error)
	GetProfile(userID int64) (*Profile, error)
	UpdateProfile(userID int64, upd ProfileUpdate) error
	ListUserRefs(companyID int64, role auth.Role) ([]*UserRef, error)
}
