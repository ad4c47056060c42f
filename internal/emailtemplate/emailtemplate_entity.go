package emailtemplate

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification events a template can be bound to. Each event has at
// most one enabled template; the notifier looks templates up by event.
const (
	EventLeaveSubmitted = "leave_submitted"
	EventLeaveApproved  = "leave_approved"
	EventLeaveRejected  = "leave_rejected"
)

func IsValidEvent(event string) bool {
	switch event {
	case EventLeaveSubmitted, EventLeaveApproved, EventLeaveRejected:
		return true
	}
	return false
}

// TemplateMetadata is stored as a JSONB column.
type TemplateMetadata struct {
	Placeholders []string `json:"placeholders,omitempty"`
	CC           []string `json:"cc,omitempty"`
	Enabled      bool     `json:"enabled"`
}

func (m TemplateMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *TemplateMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = TemplateMetadata{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for TemplateMetadata", value)
	}
}

type EmailTemplate struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string           `gorm:"size:100;not null;uniqueIndex:uq_email_templates_name" json:"name"`
	Subject   string           `gorm:"size:255;not null" json:"subject"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	Event     string           `gorm:"size:50;not null;index" json:"event"`
	Metadata  TemplateMetadata `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}
