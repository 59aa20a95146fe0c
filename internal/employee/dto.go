package employee

import (
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
	"github.com/o1-spec/techservices-portal/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (d *CreateEmployeeDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Name = strings.TrimSpace(d.Name)
	if d.Status == "" {
		d.Status = StatusActive
	}

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("role", d.Role).Required().OneOf([]string{string(auth.RoleAdmin), string(auth.RoleManager), string(auth.RoleEmployee)}, internal.ErrCodeInvalidRole)
	v.Field("status", d.Status).OneOf([]string{StatusActive, StatusInactive}, internal.ErrCodeInvalidStatus)
	return v.Validate()
}

// UpdateProfileDTO is the self-service profile edit. Password is optional;
// when present it replaces the credential.
type UpdateProfileDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Password string `json:"password"`
}

func (d *UpdateProfileDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Name = strings.TrimSpace(d.Name)

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).MinLength(8).Password()
	return v.Validate()
}

type UpdateEmployeeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (d *UpdateEmployeeDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Name = strings.TrimSpace(d.Name)

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("role", d.Role).Required().OneOf([]string{string(auth.RoleAdmin), string(auth.RoleManager), string(auth.RoleEmployee)}, internal.ErrCodeInvalidRole)
	v.Field("status", d.Status).Required().OneOf([]string{StatusActive, StatusInactive}, internal.ErrCodeInvalidStatus)
	return v.Validate()
}
