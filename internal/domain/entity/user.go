package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // admin, staff
	PhoneNumber  string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
