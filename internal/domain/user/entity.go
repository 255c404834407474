package user

import "time"

// User is an authenticated actor. Admins may generate, adjust and
// approve/reject timesheets; non-admins get read access only.
type User struct {
	ID           string
	Email        string
	PasswordHash *string
	FullName     string
	IsAdmin      bool
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
