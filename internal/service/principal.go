package service

// Role identifies the kind of authenticated caller.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleStaff   Role = "staff"
)

// Principal is the resolved identity of an authenticated caller. Operations
// that act on "the current caller" receive it as an explicit parameter; there
// is no ambient current-user state.
type Principal struct {
	Role      Role
	AccountID int
}

// IsStaff reports whether the caller holds administrative authority.
func (p Principal) IsStaff() bool { return p.Role == RoleStaff }
