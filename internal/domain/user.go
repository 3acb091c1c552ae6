package domain

import "time"

// UserType tags the single user record; subtype-specific fields live as
// optional columns keyed by the same identity instead of separate tables.
type UserType string

const (
	UserTypeStudent     UserType = "student"
	UserTypeFaculty     UserType = "faculty"
	UserTypeCoordinator UserType = "coordinator"
	UserTypeCustodian   UserType = "custodian"
	UserTypeAdmin       UserType = "admin"
)

// User is the domain model for anyone who requests or manages venues.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	UserType    UserType
	About       *string
	Location    *string
	Department  *string
	Course      *string
	Affiliation *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Name returns the display name.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}

// IsCustodian reports whether the user may own venues.
func (u *User) IsCustodian() bool {
	return u.UserType == UserTypeCustodian
}
