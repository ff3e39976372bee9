package organizations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

func newTestConcept(t *testing.T) *Concept {
	t.Helper()
	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, "organizations")
}

func mustCreate(t *testing.T, c *Concept, author, name string) *OrgDoc {
	t.Helper()
	_, org, err := c.CreateOrg(context.Background(), author, name, "a troupe", false)
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	return org
}

func TestCreateOrg(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)

	msg, org, err := c.CreateOrg(ctx, "u1", "Troupe", "desc", true)
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	if msg != "Organization created successfully!" {
		t.Errorf("message = %q", msg)
	}
	if org == nil || org.ID == "" {
		t.Fatal("expected freshly read organization")
	}
	if !org.Private {
		t.Error("expected private organization")
	}
	// The author starts as the sole member.
	if len(org.Members) != 1 || org.Members[0] != "u1" {
		t.Errorf("members = %v", org.Members)
	}
}

func TestGetOrg(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	org, err := c.GetOrg(ctx, created.ID)
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	if org.Name != "Troupe" {
		t.Errorf("name = %q", org.Name)
	}

	if _, err := c.GetOrg(ctx, "missing"); !apperrors.IsCode(err, apperrors.CodeOrgNotFound) {
		t.Fatalf("missing org error = %v", err)
	}
}

func TestUpdateOrg(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	name := "Ensemble"
	if _, err := c.UpdateOrg(ctx, created.ID, &name, nil); err != nil {
		t.Fatalf("update org: %v", err)
	}

	org, err := c.GetOrg(ctx, created.ID)
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	if org.Name != "Ensemble" || org.Description != "a troupe" {
		t.Errorf("org = %+v", org)
	}
}

func TestMembers(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	for i := 0; i < 2; i++ {
		if _, err := c.AddMember(ctx, created.ID, "u2"); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}
	org, err := c.GetOrg(ctx, created.ID)
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	if len(org.Members) != 2 {
		t.Fatalf("members = %v, want u1 and u2", org.Members)
	}

	if _, err := c.DeleteMember(ctx, created.ID, "u2"); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	_, err = c.DeleteMember(ctx, created.ID, "u2")
	if !apperrors.IsCode(err, apperrors.CodeOrgMemberMissing) {
		t.Fatalf("delete absent member error = %v, want %s", err, apperrors.CodeOrgMemberMissing)
	}
}

func TestPrivacyToggle(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	if _, err := c.MakePrivate(ctx, created.ID); err != nil {
		t.Fatalf("make private: %v", err)
	}
	org, err := c.GetOrg(ctx, created.ID)
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	if !org.Private {
		t.Error("expected private after MakePrivate")
	}

	if _, err := c.MakePublic(ctx, created.ID); err != nil {
		t.Fatalf("make public: %v", err)
	}
	org, err = c.GetOrg(ctx, created.ID)
	if err != nil {
		t.Fatalf("get org: %v", err)
	}
	if org.Private {
		t.Error("expected public after MakePublic")
	}
}

func TestAssertAuthorIsUser(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	if err := c.AssertAuthorIsUser(ctx, created.ID, "u1"); err != nil {
		t.Fatalf("author check for owner: %v", err)
	}
	if err := c.AssertAuthorIsUser(ctx, created.ID, "u2"); !apperrors.IsCode(err, apperrors.CodeOrgAuthorMismatch) {
		t.Fatalf("wrong author error = %v", err)
	}
	if err := c.AssertAuthorIsUser(ctx, "missing", "u2"); !apperrors.IsCode(err, apperrors.CodeOrgNotFound) {
		t.Fatalf("missing org error = %v", err)
	}
}

func TestDeleteOrg(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	created := mustCreate(t, c, "u1", "Troupe")

	if _, err := c.DeleteOrg(ctx, created.ID); err != nil {
		t.Fatalf("delete org: %v", err)
	}
	if _, err := c.GetOrg(ctx, created.ID); !apperrors.IsCode(err, apperrors.CodeOrgNotFound) {
		t.Fatalf("deleted org error = %v", err)
	}
}
