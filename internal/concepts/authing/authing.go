// Package authing manages user identities. Credentials and sessions are
// handled elsewhere; this concept only owns the id/username mapping.
package authing

import (
	"context"
	"fmt"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// DeletedUserPlaceholder stands in for users that no longer resolve when
// translating ids to usernames in bulk.
const DeletedUserPlaceholder = "DELETED_USER"

// UserDoc is one user record.
type UserDoc struct {
	docstore.Base
	Username string `json:"username"`
}

// Concept owns the users collection.
type Concept struct {
	users *docstore.Collection[UserDoc]
}

// New creates the authing concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{users: docstore.NewCollection[UserDoc](db, collection)}
}

// Create registers a user with a unique, non-empty username and returns the
// freshly read record.
func (c *Concept) Create(ctx context.Context, username string) (string, *UserDoc, error) {
	if err := c.assertUsernameAvailable(ctx, username); err != nil {
		return "", nil, err
	}

	id, err := c.users.CreateOne(ctx, UserDoc{Username: username})
	if err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}
	user, err := c.users.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read user: %w", err)
	}
	return "User created successfully!", user, nil
}

// GetUserByID returns the user or a not-found error.
func (c *Concept) GetUserByID(ctx context.Context, id string) (*UserDoc, error) {
	user, err := c.users.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if user == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeUserNotFound,
			"user not found", map[string]string{"User": id})
	}
	return user, nil
}

// GetUserByUsername resolves a username to its user record.
func (c *Concept) GetUserByUsername(ctx context.Context, username string) (*UserDoc, error) {
	user, err := c.users.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, fmt.Errorf("read user by username: %w", err)
	}
	if user == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeUserNotFound,
			"user not found", map[string]string{"User": username})
	}
	return user, nil
}

// GetUsers returns all users, newest first.
func (c *Concept) GetUsers(ctx context.Context) ([]UserDoc, error) {
	users, err := c.users.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

// IDsToUsernames resolves user ids to usernames with one batched read. The
// result is aligned 1:1 with the input; unresolved ids map to a placeholder.
func (c *Concept) IDsToUsernames(ctx context.Context, ids []string) ([]string, error) {
	users, err := c.users.ReadMany(ctx, docstore.Filter{"id": docstore.In(ids...)})
	if err != nil {
		return nil, fmt.Errorf("read users by ids: %w", err)
	}

	byID := make(map[string]string, len(users))
	for _, user := range users {
		byID[user.ID] = user.Username
	}

	usernames := make([]string, len(ids))
	for i, id := range ids {
		username, ok := byID[id]
		if !ok {
			username = DeletedUserPlaceholder
		}
		usernames[i] = username
	}
	return usernames, nil
}

// UpdateUsername changes the user's username, enforcing uniqueness.
func (c *Concept) UpdateUsername(ctx context.Context, id, username string) (string, error) {
	if err := c.assertUsernameAvailable(ctx, username); err != nil {
		return "", err
	}
	if err := c.users.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"username": username}); err != nil {
		return "", fmt.Errorf("update username: %w", err)
	}
	return "Username updated successfully!", nil
}

// Delete removes the user record.
func (c *Concept) Delete(ctx context.Context, id string) (string, error) {
	if err := c.users.DeleteOne(ctx, docstore.Filter{"id": id}); err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	return "User deleted!", nil
}

func (c *Concept) assertUsernameAvailable(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.New(apperrors.CodeUsernameEmpty, "username must be non-empty")
	}
	existing, err := c.users.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return apperrors.WithMetadata(apperrors.CodeUsernameTaken,
			fmt.Sprintf("username %s is already taken", username),
			map[string]string{"Username": username})
	}
	return nil
}
