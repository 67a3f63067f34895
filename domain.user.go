package main

// DefaultUserRole is assigned to any user payload which omits the role.
const DefaultUserRole = "reader"

// User represents a registered reader or librarian account.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
