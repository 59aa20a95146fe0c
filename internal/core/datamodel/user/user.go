package user

import "time"

type User struct {
	ID            int64      `gorm:"primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	Email         string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	Role          string     `gorm:"column:role;not null;default:'Employee'"`
	CompanyID     int64      `gorm:"column:company_id;not null;index"`
	Phone         string     `gorm:"column:phone"`
	Department    string     `gorm:"column:department"`
	Location      string     `gorm:"column:location"`
	Bio           string     `gorm:"column:bio"`
	Avatar        *string    `gorm:"column:avatar"`
	IsActive      bool       `gorm:"column:is_active;default:true"`
	EmailVerified bool       `gorm:"column:email_verified;default:false"`
	LastLogin     *time.Time `gorm:"column:last_login"`
	CreatedAt     time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
