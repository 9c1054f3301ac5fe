package services

// Identity is the caller on whose behalf a record operation runs.
type Identity struct {
	UserID        uint
	Authenticated bool
}

func AuthenticatedIdentity(userID uint) Identity {
	return Identity{UserID: userID, Authenticated: userID != 0}
}

func AnonymousIdentity() Identity {
	return Identity{}
}

func requireIdentity(identity Identity) (uint, error) {
	if !identity.Authenticated || identity.UserID == 0 {
		return 0, ErrUnauthorized
	}
	return identity.UserID, nil
}
