package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

// ErrNotSignedIn is returned when a sync is attempted without a session.
var ErrNotSignedIn = errors.New("please sign in")

// ErrSyncFailed is the generic condition surfaced when the user directory
// cannot resolve the signed-in identity.
var ErrSyncFailed = errors.New("failed to sync user data")

// SyncUser resolves the signed-in identity to its internal user record,
// creating the record on first sign-in and refreshing stale profile fields
// on later ones.
func SyncUser(ctx context.Context, s store.Store, session Session) (*model.User, error) {
	if !session.IsLoaded || !session.IsSignedIn {
		return nil, ErrNotSignedIn
	}

	user, err := s.FindUserByExternalID(ctx, session.ExternalID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	if user == nil {
		created, err := s.CreateUser(ctx, model.User{
			ExternalID: session.ExternalID,
			Email:      session.Email,
			FirstName:  session.FirstName,
			LastName:   session.LastName,
			ImageURL:   session.ImageURL,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		return created, nil
	}

	needsUpdate := user.Email != session.Email ||
		user.FirstName != session.FirstName ||
		user.LastName != session.LastName ||
		user.ImageURL != session.ImageURL

	if needsUpdate {
		user.Email = session.Email
		user.FirstName = session.FirstName
		user.LastName = session.LastName
		user.ImageURL = session.ImageURL

		updated, err := s.UpdateUser(ctx, *user)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		return updated, nil
	}

	return user, nil
}
