package domain

import "time"

// UserStatus represents lifecycle states for a member account.
type UserStatus string

const (
	// UserStatusPending is the initial state after registration, awaiting
	// an admin decision.
	UserStatusPending UserStatus = "PENDING"
	// UserStatusVerified is the terminal active state. It is the only state
	// from which login is possible.
	UserStatusVerified UserStatus = "VERIFIED"
	// UserStatusRejected is the terminal closed state set by admin rejection.
	UserStatusRejected UserStatus = "REJECTED"
)

// UserRole distinguishes ordinary members from administrators.
type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// User is the domain model for club members. PasswordHash stays empty until
// the owner activates the account; a non-VERIFIED user never holds a
// credential that can authenticate.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Status         UserStatus
	Role           UserRole
	Year           string
	Domain         string
	RegistrationNo string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanLogin reports whether the account may authenticate at all.
func (u *User) CanLogin() bool {
	return u != nil && u.Status == UserStatusVerified && u.PasswordHash != ""
}
