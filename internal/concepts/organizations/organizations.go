// Package organizations manages organization records and their member lists.
package organizations

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// OrgDoc is one organization record. The author is always a member.
type OrgDoc struct {
	docstore.Base
	Author      string   `json:"author"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Private     bool     `json:"private"`
	Members     []string `json:"members"`
}

// Concept owns the organizations collection.
type Concept struct {
	orgs *docstore.Collection[OrgDoc]
}

// New creates the organizations concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{orgs: docstore.NewCollection[OrgDoc](db, collection)}
}

// CreateOrg creates an organization with the author as its first member and
// returns the freshly read record.
func (c *Concept) CreateOrg(ctx context.Context, author, name, description string, private bool) (string, *OrgDoc, error) {
	if strings.TrimSpace(author) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "author is required")
	}
	if strings.TrimSpace(name) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "name is required")
	}

	id, err := c.orgs.CreateOne(ctx, OrgDoc{
		Author:      author,
		Name:        name,
		Description: description,
		Private:     private,
		Members:     []string{author},
	})
	if err != nil {
		return "", nil, fmt.Errorf("create organization: %w", err)
	}
	org, err := c.orgs.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read organization: %w", err)
	}
	return "Organization created successfully!", org, nil
}

// DeleteOrg removes the organization.
func (c *Concept) DeleteOrg(ctx context.Context, id string) (string, error) {
	if err := c.orgs.DeleteOne(ctx, docstore.Filter{"id": id}); err != nil {
		return "", fmt.Errorf("delete organization: %w", err)
	}
	return "Organization deleted successfully!", nil
}

// GetOrg returns the organization or a not-found error.
func (c *Concept) GetOrg(ctx context.Context, id string) (*OrgDoc, error) {
	org, err := c.orgs.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("read organization: %w", err)
	}
	if org == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeOrgNotFound,
			"organization not found", map[string]string{"Org": id})
	}
	return org, nil
}

// GetAllOrgs returns all organizations, newest first.
func (c *Concept) GetAllOrgs(ctx context.Context) ([]OrgDoc, error) {
	orgs, err := c.orgs.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read organizations: %w", err)
	}
	return orgs, nil
}

// UpdateOrg replaces the organization's name and/or description. Nil fields
// are left untouched.
func (c *Concept) UpdateOrg(ctx context.Context, id string, name, description *string) (string, error) {
	update := docstore.Patch{}
	if name != nil {
		update["name"] = *name
	}
	if description != nil {
		update["description"] = *description
	}
	if err := c.orgs.PartialUpdateOne(ctx, docstore.Filter{"id": id}, update); err != nil {
		return "", fmt.Errorf("update organization: %w", err)
	}
	return "Organization successfully updated!", nil
}

// AddMember adds a member. Adding one already present is a no-op that still
// reports success.
func (c *Concept) AddMember(ctx context.Context, id, member string) (string, error) {
	org, err := c.orgs.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", fmt.Errorf("read organization: %w", err)
	}
	if org != nil && !slices.Contains(org.Members, member) {
		members := append(org.Members, member)
		if err := c.orgs.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"members": members}); err != nil {
			return "", fmt.Errorf("update members: %w", err)
		}
	}
	return "Organization member successfully added!", nil
}

// DeleteMember removes a member. Unlike the event list fields, removing a
// member that is not in the list is an error.
func (c *Concept) DeleteMember(ctx context.Context, id, member string) (string, error) {
	org, err := c.orgs.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", fmt.Errorf("read organization: %w", err)
	}

	var members []string
	if org != nil {
		members = org.Members
	}
	index := slices.Index(members, member)
	if index < 0 {
		return "", apperrors.WithMetadata(apperrors.CodeOrgMemberMissing,
			"member not in members list", map[string]string{"Member": member, "Org": id})
	}

	members = slices.Delete(members, index, index+1)
	if err := c.orgs.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"members": members}); err != nil {
		return "", fmt.Errorf("update members: %w", err)
	}
	return "Organization member successfully deleted!", nil
}

// MakePublic marks the organization as public.
func (c *Concept) MakePublic(ctx context.Context, id string) (string, error) {
	return c.setPrivacy(ctx, id, false)
}

// MakePrivate marks the organization as private.
func (c *Concept) MakePrivate(ctx context.Context, id string) (string, error) {
	return c.setPrivacy(ctx, id, true)
}

func (c *Concept) setPrivacy(ctx context.Context, id string, private bool) (string, error) {
	if err := c.orgs.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"private": private}); err != nil {
		return "", fmt.Errorf("update privacy: %w", err)
	}
	return "Organization privacy successfully updated!", nil
}

// AssertAuthorIsUser fails when the organization does not exist or its
// author is not the given user. Existence is checked first.
func (c *Concept) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	org, err := c.orgs.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read organization: %w", err)
	}
	if org == nil {
		return apperrors.WithMetadata(apperrors.CodeOrgNotFound,
			fmt.Sprintf("organization %s does not exist", id), map[string]string{"Org": id})
	}
	if org.Author != user {
		return apperrors.WithMetadata(apperrors.CodeOrgAuthorMismatch,
			fmt.Sprintf("%s is not the author of organization %s", user, id),
			map[string]string{"User": user, "Org": id})
	}
	return nil
}
