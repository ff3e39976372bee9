package app

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// registerErrorFormatters installs the cross-concept message formatters.
// Concepts raise errors carrying raw ids; these formatters resolve the ids
// to usernames and event names before the message reaches a client. Codes
// without a formatter fall back to the locale catalog.
func (a *App) registerErrorFormatters() {
	a.Errors.Register(apperrors.CodePostAuthorMismatch, func(ctx context.Context, e *apperrors.Error) (string, error) {
		username, err := a.resolveUsername(ctx, e.Metadata["User"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is not the author of post %s!", username, e.Metadata["Post"]), nil
	})

	a.Errors.Register(apperrors.CodeVideoAuthorMismatch, func(ctx context.Context, e *apperrors.Error) (string, error) {
		username, err := a.resolveUsername(ctx, e.Metadata["User"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is not the author of video %s!", username, e.Metadata["Video"]), nil
	})

	a.Errors.Register(apperrors.CodeOrgAuthorMismatch, func(ctx context.Context, e *apperrors.Error) (string, error) {
		username, err := a.resolveUsername(ctx, e.Metadata["User"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is not the author of organization %s!", username, e.Metadata["Org"]), nil
	})

	a.Errors.Register(apperrors.CodeEventAuthorMismatch, func(ctx context.Context, e *apperrors.Error) (string, error) {
		username, eventName, err := a.resolveUserAndEvent(ctx, e.Metadata["User"], e.Metadata["Event"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is not the author of event %s!", username, eventName), nil
	})

	a.Errors.Register(apperrors.CodeEventAlreadyAttendee, func(ctx context.Context, e *apperrors.Error) (string, error) {
		username, eventName, err := a.resolveUserAndEvent(ctx, e.Metadata["User"], e.Metadata["Event"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is already attending event %s!", username, eventName), nil
	})

	a.Errors.Register(apperrors.CodeInviteAlreadyExists, func(ctx context.Context, e *apperrors.Error) (string, error) {
		from, to, err := a.resolvePair(ctx, e.Metadata["From"], e.Metadata["To"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("An invite from %s to %s for this event already exists!", from, to), nil
	})

	a.Errors.Register(apperrors.CodeInviteNotFound, func(ctx context.Context, e *apperrors.Error) (string, error) {
		from, to, err := a.resolvePair(ctx, e.Metadata["From"], e.Metadata["To"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("No pending invite from %s to %s exists for this event!", from, to), nil
	})

	a.Errors.Register(apperrors.CodeFriendRequestAlreadyExists, func(ctx context.Context, e *apperrors.Error) (string, error) {
		from, to, err := a.resolvePair(ctx, e.Metadata["From"], e.Metadata["To"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Friend request between %s and %s already exists!", from, to), nil
	})

	a.Errors.Register(apperrors.CodeFriendRequestNotFound, func(ctx context.Context, e *apperrors.Error) (string, error) {
		from, to, err := a.resolvePair(ctx, e.Metadata["From"], e.Metadata["To"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Friend request from %s to %s does not exist!", from, to), nil
	})

	a.Errors.Register(apperrors.CodeFriendNotFound, func(ctx context.Context, e *apperrors.Error) (string, error) {
		user, friend, err := a.resolvePair(ctx, e.Metadata["User"], e.Metadata["Friend"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Friendship between %s and %s does not exist!", user, friend), nil
	})

	a.Errors.Register(apperrors.CodeAlreadyFriends, func(ctx context.Context, e *apperrors.Error) (string, error) {
		user, friend, err := a.resolvePair(ctx, e.Metadata["User"], e.Metadata["Friend"])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s and %s are already friends!", user, friend), nil
	})
}

func (a *App) resolveUsername(ctx context.Context, id string) (string, error) {
	user, err := a.Authing.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// resolvePair resolves two user ids to usernames with one batched lookup;
// ids that no longer resolve render as the placeholder.
func (a *App) resolvePair(ctx context.Context, first, second string) (string, string, error) {
	usernames, err := a.Authing.IDsToUsernames(ctx, []string{first, second})
	if err != nil {
		return "", "", err
	}
	return usernames[0], usernames[1], nil
}

// resolveUserAndEvent runs the two independent lookups concurrently.
func (a *App) resolveUserAndEvent(ctx context.Context, userID, eventID string) (string, string, error) {
	var (
		wg                sync.WaitGroup
		username, name    string
		userErr, eventErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		username, userErr = a.resolveUsername(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		var names []string
		names, eventErr = a.Events.IDsToNames(ctx, []string{eventID})
		if eventErr == nil {
			name = names[0]
		}
	}()
	wg.Wait()

	if userErr != nil {
		return "", "", userErr
	}
	if eventErr != nil {
		return "", "", eventErr
	}
	return username, name, nil
}
