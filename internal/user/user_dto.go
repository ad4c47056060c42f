package user

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`
	TitleTH    string `json:"title_th"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Email      string `json:"email" binding:"required,email"`

	// Omitted balances fall back to the default yearly allotment
	LeaveBalances *LeaveBalances `json:"leave_balances"`
}

type UpdateUserRequest struct {
	Role       string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`
	TitleTH    string `json:"title_th"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Email      string `json:"email" binding:"required,email"`
	IsActive   *bool  `json:"is_active"`
}

// PatchUserRequest carries partial updates; nil fields are left untouched.
type PatchUserRequest struct {
	Password      *string        `json:"password" binding:"omitempty,min=8"`
	Role          *string        `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE"`
	TitleTH       *string        `json:"title_th"`
	FirstName     *string        `json:"first_name"`
	LastName      *string        `json:"last_name"`
	Position      *string        `json:"position"`
	Department    *string        `json:"department"`
	Email         *string        `json:"email" binding:"omitempty,email"`
	IsActive      *bool          `json:"is_active"`
	LeaveBalances *LeaveBalances `json:"leave_balances"`
}

type UserResponse struct {
	ID            string        `json:"id"`
	Username      string        `json:"username"`
	Role          string        `json:"role"`
	TitleTH       string        `json:"title_th,omitempty"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	FullName      string        `json:"full_name"`
	Position      string        `json:"position,omitempty"`
	Department    string        `json:"department,omitempty"`
	Email         string        `json:"email"`
	LeaveBalances LeaveBalances `json:"leave_balances"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     string        `json:"created_at"`
}

// UserOption is the trimmed shape for admin dropdowns.
type UserOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
