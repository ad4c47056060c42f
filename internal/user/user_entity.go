package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex:uq_users_username"`
	Password string    `gorm:"column:password;type:text;not null"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`

	TitleTH    string `gorm:"column:title_th;type:varchar(50)"`
	FirstName  string `gorm:"column:first_name;type:varchar(255);not null"`
	LastName   string `gorm:"column:last_name;type:varchar(255);not null"`
	Position   string `gorm:"column:position;type:varchar(255)"`
	Department string `gorm:"column:department;type:varchar(255)"`
	Email      string `gorm:"column:email;type:text;not null"`

	LeaveBalances LeaveBalances `gorm:"column:leave_balances;type:jsonb;not null"`

	IsActive  bool           `gorm:"column:is_active;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// FullName renders the Thai display name used on leave forms and emails.
func (u User) FullName() string {
	if u.TitleTH != "" {
		return u.TitleTH + u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.LastName
}
