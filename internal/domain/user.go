package domain

import "time"

type UserRole string

const (
	UserRoleLandlord UserRole = "LANDLORD"
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleTenant   UserRole = "TENANT"
)

// User role is assigned at provisioning time and never changes afterwards.
type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Role         UserRole  `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
