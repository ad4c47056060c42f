package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentNo string    `gorm:"type:varchar(20);index:idx_leave_requests_document_no"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`

	// Name snapshot taken at submission time; not kept in sync with users
	EmployeeName string `gorm:"type:varchar(255);not null"`

	LeaveType     string    `gorm:"type:varchar(30);not null"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	TotalDays     int       `gorm:"type:int;not null;default:1"`
	Reason        string    `gorm:"type:text"`
	ContactNumber string    `gorm:"type:varchar(30)"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	RequestDate time.Time  `gorm:"type:date;not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}
