package auth

import (
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))

	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type RegisterDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
}

func (d *RegisterDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Name = strings.TrimSpace(d.Name)
	d.CompanyName = strings.TrimSpace(d.CompanyName)

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).Password()
	v.Field("role", d.Role).Required().OneOf([]string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}, internal.ErrCodeInvalidRole)
	v.Field("companyName", d.CompanyName).Required()
	return v.Validate()
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d *RefreshTokenDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (d *ForgotPasswordDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))

	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	return v.Validate()
}

type ResetPasswordDTO struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (d *ResetPasswordDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("token", d.Token).Required()
	v.Field("password", d.Password).Required().MinLength(8).Password()
	return v.Validate()
}

type VerifyEmailDTO struct {
	Token string `json:"token"`
}

func (d *VerifyEmailDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("token", d.Token).Required()
	return v.Validate()
}

// UserView is the safe response shape for a principal; it never carries the
// secret hash.
type UserView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"isEmailVerified"`
}

func (u *User) ToView() UserView {
	return UserView{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}
