package service

// Caller is the authenticated user on whose behalf a service call runs.
type Caller struct {
	UserID int64
	Admin  bool
}

// Authorize allows admins and the owner of the resource.
func (c Caller) Authorize(ownerID int64) error {
	if c.Admin || c.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
