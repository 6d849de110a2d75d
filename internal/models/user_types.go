package models

// Role names issued by the ordering backend.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleUser     = "User"
)

// Owner is the identity a request acts for, as shown back to the client.
type Owner struct {
	ID    string `json:"id"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}
