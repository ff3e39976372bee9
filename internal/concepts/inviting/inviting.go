// Package inviting manages event invitations between users.
package inviting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// Status is the lifecycle status of an invite. Pending invites transition to
// accepted or rejected; removal deletes the record instead of recording a
// status.
type Status string

const (
	// StatusPending indicates an invite awaiting a response.
	StatusPending Status = "pending"
	// StatusAccepted indicates an accepted invite.
	StatusAccepted Status = "accepted"
	// StatusRejected indicates a rejected invite.
	StatusRejected Status = "rejected"
)

// InviteDoc is one invitation record. A terminal transition deletes the
// pending record and creates a fresh one, so history is append-only across
// distinct records.
type InviteDoc struct {
	docstore.Base
	Event  string `json:"event"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status Status `json:"status"`
}

// Concept owns the invites collection.
type Concept struct {
	invites *docstore.Collection[InviteDoc]
}

// New creates the inviting concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{invites: docstore.NewCollection[InviteDoc](db, collection)}
}

// SendInvite creates a pending invite for the (event, from, to) triple.
// It fails when a pending invite for the exact triple already exists; the
// check scans for a conflicting pending record rather than relying on a
// store-level uniqueness constraint.
func (c *Concept) SendInvite(ctx context.Context, event, from, to string) (string, error) {
	if err := validTriple(event, from, to); err != nil {
		return "", err
	}

	conflicts, err := c.invites.ReadMany(ctx, docstore.Filter{
		"event": event, "from": from, "to": to, "status": string(StatusPending),
	})
	if err != nil {
		return "", fmt.Errorf("scan pending invites: %w", err)
	}
	if len(conflicts) > 0 {
		return "", apperrors.WithMetadata(apperrors.CodeInviteAlreadyExists,
			"invite already exists", tripleMetadata(event, from, to))
	}

	if _, err := c.invites.CreateOne(ctx, InviteDoc{
		Event: event, From: from, To: to, Status: StatusPending,
	}); err != nil {
		return "", fmt.Errorf("create invite: %w", err)
	}
	return "Sent invite!", nil
}

// AcceptInvite transitions the pending invite for the triple to accepted.
func (c *Concept) AcceptInvite(ctx context.Context, event, from, to string) (string, error) {
	if _, err := c.removePendingInvite(ctx, event, from, to); err != nil {
		return "", err
	}
	if _, err := c.invites.CreateOne(ctx, InviteDoc{
		Event: event, From: from, To: to, Status: StatusAccepted,
	}); err != nil {
		return "", fmt.Errorf("create accepted invite: %w", err)
	}
	return "Accepted invite!", nil
}

// RejectInvite transitions the pending invite for the triple to rejected.
func (c *Concept) RejectInvite(ctx context.Context, event, from, to string) (string, error) {
	if _, err := c.removePendingInvite(ctx, event, from, to); err != nil {
		return "", err
	}
	if _, err := c.invites.CreateOne(ctx, InviteDoc{
		Event: event, From: from, To: to, Status: StatusRejected,
	}); err != nil {
		return "", fmt.Errorf("create rejected invite: %w", err)
	}
	return "Rejected invite!", nil
}

// RemoveInvite withdraws the pending invite for the triple.
func (c *Concept) RemoveInvite(ctx context.Context, event, from, to string) (string, error) {
	if _, err := c.removePendingInvite(ctx, event, from, to); err != nil {
		return "", err
	}
	return "Removed invite!", nil
}

// GetInvites returns every invite where the user is sender or recipient,
// regardless of status, newest first.
func (c *Concept) GetInvites(ctx context.Context, user string) ([]InviteDoc, error) {
	sent, err := c.invites.ReadMany(ctx, docstore.Filter{"from": user})
	if err != nil {
		return nil, fmt.Errorf("read sent invites: %w", err)
	}
	received, err := c.invites.ReadMany(ctx, docstore.Filter{"to": user})
	if err != nil {
		return nil, fmt.Errorf("read received invites: %w", err)
	}

	all := make([]InviteDoc, 0, len(sent)+len(received))
	seen := make(map[string]bool, len(sent))
	for _, invite := range sent {
		all = append(all, invite)
		seen[invite.ID] = true
	}
	for _, invite := range received {
		if !seen[invite.ID] {
			all = append(all, invite)
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

// removePendingInvite atomically removes the pending invite for the triple.
// The pop narrows the window between the existence check and the delete, so
// two concurrent terminal transitions cannot both claim the same record.
func (c *Concept) removePendingInvite(ctx context.Context, event, from, to string) (*InviteDoc, error) {
	if err := validTriple(event, from, to); err != nil {
		return nil, err
	}

	invite, err := c.invites.PopOne(ctx, docstore.Filter{
		"event": event, "from": from, "to": to, "status": string(StatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("pop pending invite: %w", err)
	}
	if invite == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeInviteNotFound,
			"invite does not exist", tripleMetadata(event, from, to))
	}
	return invite, nil
}

func validTriple(event, from, to string) error {
	if strings.TrimSpace(event) == "" || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return apperrors.New(apperrors.CodeBadValues, "event, from and to are required")
	}
	return nil
}

func tripleMetadata(event, from, to string) map[string]string {
	return map[string]string{"Event": event, "From": from, "To": to}
}
