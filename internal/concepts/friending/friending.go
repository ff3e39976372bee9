// Package friending manages friend requests and friendships between users.
package friending

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// Status is the lifecycle status of a friend request. Pending requests
// transition to accepted or rejected; withdrawal deletes the record instead
// of recording a status.
type Status string

const (
	// StatusPending indicates a request awaiting a response.
	StatusPending Status = "pending"
	// StatusAccepted indicates an accepted request.
	StatusAccepted Status = "accepted"
	// StatusRejected indicates a rejected request.
	StatusRejected Status = "rejected"
)

// RequestDoc is one friend request record. A terminal transition deletes the
// pending record and creates a fresh one, so history is append-only across
// distinct records.
type RequestDoc struct {
	docstore.Base
	From   string `json:"from"`
	To     string `json:"to"`
	Status Status `json:"status"`
}

// FriendshipDoc is one established friendship. The pair is stored in the
// order the request flowed, so lookups check both orders.
type FriendshipDoc struct {
	docstore.Base
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}

// Concept owns the friendships collection and its companion requests
// collection.
type Concept struct {
	friends  *docstore.Collection[FriendshipDoc]
	requests *docstore.Collection[RequestDoc]
}

// New creates the friending concept. Requests live in a sibling collection
// named after the friendships collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{
		friends:  docstore.NewCollection[FriendshipDoc](db, collection),
		requests: docstore.NewCollection[RequestDoc](db, collection+"_requests"),
	}
}

// SendRequest creates a pending friend request from one user to another.
// It fails when the users are already friends or when a pending request
// between them exists in either direction.
func (c *Concept) SendRequest(ctx context.Context, from, to string) (string, error) {
	if err := validPair(from, to); err != nil {
		return "", err
	}
	if err := c.canSendRequest(ctx, from, to); err != nil {
		return "", err
	}
	if _, err := c.requests.CreateOne(ctx, RequestDoc{
		From: from, To: to, Status: StatusPending,
	}); err != nil {
		return "", fmt.Errorf("create friend request: %w", err)
	}
	return "Sent request!", nil
}

// AcceptRequest transitions the pending request to accepted and establishes
// the friendship. The request transition completes before the friendship is
// written, so a missing request never creates a stray friendship.
func (c *Concept) AcceptRequest(ctx context.Context, from, to string) (string, error) {
	if _, err := c.removePendingRequest(ctx, from, to); err != nil {
		return "", err
	}
	if _, err := c.requests.CreateOne(ctx, RequestDoc{
		From: from, To: to, Status: StatusAccepted,
	}); err != nil {
		return "", fmt.Errorf("create accepted request: %w", err)
	}
	if _, err := c.friends.CreateOne(ctx, FriendshipDoc{User1: from, User2: to}); err != nil {
		return "", fmt.Errorf("create friendship: %w", err)
	}
	return "Accepted request!", nil
}

// RejectRequest transitions the pending request to rejected. No friendship
// is created.
func (c *Concept) RejectRequest(ctx context.Context, from, to string) (string, error) {
	if _, err := c.removePendingRequest(ctx, from, to); err != nil {
		return "", err
	}
	if _, err := c.requests.CreateOne(ctx, RequestDoc{
		From: from, To: to, Status: StatusRejected,
	}); err != nil {
		return "", fmt.Errorf("create rejected request: %w", err)
	}
	return "Rejected request!", nil
}

// RemoveRequest withdraws the pending request.
func (c *Concept) RemoveRequest(ctx context.Context, from, to string) (string, error) {
	if _, err := c.removePendingRequest(ctx, from, to); err != nil {
		return "", err
	}
	return "Removed request!", nil
}

// RemoveFriend dissolves the friendship between the two users, whichever
// direction the original request flowed.
func (c *Concept) RemoveFriend(ctx context.Context, user, friend string) (string, error) {
	if err := validPair(user, friend); err != nil {
		return "", err
	}
	friendship, err := c.friends.PopOne(ctx, docstore.Filter{"user1": user, "user2": friend})
	if err != nil {
		return "", fmt.Errorf("pop friendship: %w", err)
	}
	if friendship == nil {
		friendship, err = c.friends.PopOne(ctx, docstore.Filter{"user1": friend, "user2": user})
		if err != nil {
			return "", fmt.Errorf("pop friendship: %w", err)
		}
	}
	if friendship == nil {
		return "", apperrors.WithMetadata(apperrors.CodeFriendNotFound,
			"friendship does not exist", friendshipMetadata(user, friend))
	}
	return "Unfriended!", nil
}

// GetFriends returns the ids of every user the given user is friends with.
func (c *Concept) GetFriends(ctx context.Context, user string) ([]string, error) {
	initiated, err := c.friends.ReadMany(ctx, docstore.Filter{"user1": user})
	if err != nil {
		return nil, fmt.Errorf("read friendships: %w", err)
	}
	received, err := c.friends.ReadMany(ctx, docstore.Filter{"user2": user})
	if err != nil {
		return nil, fmt.Errorf("read friendships: %w", err)
	}

	ids := make([]string, 0, len(initiated)+len(received))
	for _, friendship := range initiated {
		ids = append(ids, friendship.User2)
	}
	for _, friendship := range received {
		ids = append(ids, friendship.User1)
	}
	return ids, nil
}

// GetRequests returns every request where the user is sender or recipient,
// regardless of status, newest first.
func (c *Concept) GetRequests(ctx context.Context, user string) ([]RequestDoc, error) {
	sent, err := c.requests.ReadMany(ctx, docstore.Filter{"from": user})
	if err != nil {
		return nil, fmt.Errorf("read sent requests: %w", err)
	}
	received, err := c.requests.ReadMany(ctx, docstore.Filter{"to": user})
	if err != nil {
		return nil, fmt.Errorf("read received requests: %w", err)
	}

	all := make([]RequestDoc, 0, len(sent)+len(received))
	seen := make(map[string]bool, len(sent))
	for _, request := range sent {
		all = append(all, request)
		seen[request.ID] = true
	}
	for _, request := range received {
		if !seen[request.ID] {
			all = append(all, request)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// AssertNotFriends fails when a friendship between the two users exists in
// either direction.
func (c *Concept) AssertNotFriends(ctx context.Context, user, friend string) error {
	for _, filter := range []docstore.Filter{
		{"user1": user, "user2": friend},
		{"user1": friend, "user2": user},
	} {
		friendship, err := c.friends.ReadOne(ctx, filter)
		if err != nil {
			return fmt.Errorf("read friendship: %w", err)
		}
		if friendship != nil {
			return apperrors.WithMetadata(apperrors.CodeAlreadyFriends,
				"users are already friends", friendshipMetadata(user, friend))
		}
	}
	return nil
}

// canSendRequest checks that the users are not already friends and that no
// pending request exists between them in either direction.
func (c *Concept) canSendRequest(ctx context.Context, from, to string) error {
	if err := c.AssertNotFriends(ctx, from, to); err != nil {
		return err
	}
	for _, filter := range []docstore.Filter{
		{"from": from, "to": to, "status": string(StatusPending)},
		{"from": to, "to": from, "status": string(StatusPending)},
	} {
		request, err := c.requests.ReadOne(ctx, filter)
		if err != nil {
			return fmt.Errorf("read pending request: %w", err)
		}
		if request != nil {
			return apperrors.WithMetadata(apperrors.CodeFriendRequestAlreadyExists,
				"friend request already exists", requestMetadata(from, to))
		}
	}
	return nil
}

// removePendingRequest atomically removes the pending request for the pair.
// The pop narrows the window between the existence check and the delete, so
// two concurrent terminal transitions cannot both claim the same record.
func (c *Concept) removePendingRequest(ctx context.Context, from, to string) (*RequestDoc, error) {
	if err := validPair(from, to); err != nil {
		return nil, err
	}
	request, err := c.requests.PopOne(ctx, docstore.Filter{
		"from": from, "to": to, "status": string(StatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("pop pending request: %w", err)
	}
	if request == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeFriendRequestNotFound,
			"friend request does not exist", requestMetadata(from, to))
	}
	return request, nil
}

func validPair(from, to string) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return apperrors.New(apperrors.CodeBadValues, "both users are required")
	}
	return nil
}

func requestMetadata(from, to string) map[string]string {
	return map[string]string{"From": from, "To": to}
}

func friendshipMetadata(user, friend string) map[string]string {
	return map[string]string{"User": user, "Friend": friend}
}
