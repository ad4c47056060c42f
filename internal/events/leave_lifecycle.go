package events

import "time"

const LeaveLifecycleTopic = "leave.request.lifecycle.v1"

const (
	EventLeaveSubmitted     = "leave_request_submitted"
	EventLeaveStatusChanged = "leave_request_status_changed"
)

// LeaveSubmittedEvent notifies administrators that an employee filed a new
// leave request.
type LeaveSubmittedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	LeaveID       string    `json:"leave_id"`
	DocumentNo    string    `json:"document_no"`
	UserID        string    `json:"user_id"`
	EmployeeName  string    `json:"employee_name"`
	LeaveType     string    `json:"leave_type"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	TotalDays     int       `json:"total_days"`
	Reason        string    `json:"reason"`
	ContactNumber string    `json:"contact_number"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// LeaveStatusChangedEvent notifies the owning employee that an administrator
// approved or rejected their request.
type LeaveStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	LeaveID      string    `json:"leave_id"`
	DocumentNo   string    `json:"document_no"`
	UserID       string    `json:"user_id"`
	EmployeeName string    `json:"employee_name"`
	LeaveType    string    `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalDays    int       `json:"total_days"`
	Status       string    `json:"status"`
	ApprovedBy   string    `json:"approved_by,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
