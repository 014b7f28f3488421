package user

import "time"

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// UserType distinguishes the two registered customer classes. Guests have
// no user row at all; their class is implied by the missing account.
type UserType string

const (
	TypeRetail    UserType = "RETAIL"
	TypeWholesale UserType = "WHOLESALE"
)

// IsAdminRole reports whether the given role may call admin operations.
// The role set is closed; anything outside it is rejected.
func IsAdminRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

func ValidUserType(t UserType) bool {
	return t == TypeRetail || t == TypeWholesale
}

type User struct {
	ID          uint
	Email       string
	Password    string
	Name        string
	Role        Role
	UserType    UserType
	CompanyName *string
	Mobile      *string
	CreatedAt   time.Time
}
