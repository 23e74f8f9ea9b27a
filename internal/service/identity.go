package service

// Identity is the authenticated user on whose behalf an operation runs.
// The zero value is an anonymous caller.
type Identity struct {
	UserID   uint
	Username string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
