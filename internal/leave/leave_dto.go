package leave

// Leave types are validated against the lookup table in leavetype.go rather
// than a binding tag so the enumeration stays defined in one place.
type CreateLeaveRequest struct {
	LeaveType     string `json:"leave_type" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
	ContactNumber string `json:"contact_number"`
}

type UpdateLeaveRequest struct {
	LeaveType     string `json:"leave_type" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
	ContactNumber string `json:"contact_number"`
	Status        string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	DocumentNo     string  `json:"document_no,omitempty"`
	UserID         string  `json:"user_id"`
	EmployeeName   string  `json:"employee_name"`
	LeaveType      string  `json:"leave_type"`
	LeaveTypeLabel string  `json:"leave_type_label"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	ContactNumber  string  `json:"contact_number,omitempty"`
	Status         string  `json:"status"`
	RequestDate    string  `json:"request_date"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
}
