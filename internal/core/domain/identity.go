package domain

// Identity is the resolved caller identity for a single request. It is
// populated at most once by the authentication gate and never mutated
// afterwards; a zero Identity means the request is unauthenticated.
type Identity struct {
	UserID string
	Role   Role
}

// IsZero reports whether no identity was resolved for the request.
func (id Identity) IsZero() bool {
	return id.UserID == ""
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// AuthorizeOwner checks that the caller owns a resource. An empty owner
// is tolerated: records created before owner stamping have no owner to
// enforce, and any caller may modify them.
func AuthorizeOwner(id Identity, owner string) error {
	if owner == "" || owner == id.UserID {
		return nil
	}
	return ErrForbidden
}
