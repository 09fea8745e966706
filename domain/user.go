package domain

// User is the only resource exposed by the service.
type User struct {
	ID    ID
	Name  string
	Email string
	Role  string
}

// UserPatch carries the mutable fields of a user. Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil
}
