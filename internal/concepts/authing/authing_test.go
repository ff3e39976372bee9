package authing

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
	return New(db, "users")
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)

	msg, user, err := c.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg != "User created successfully!" {
		t.Errorf("message = %q", msg)
	}
	if user == nil || user.ID == "" || user.Username != "alice" {
		t.Fatalf("user = %+v", user)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)

	if _, _, err := c.Create(ctx, "  "); !apperrors.IsCode(err, apperrors.CodeUsernameEmpty) {
		t.Fatalf("empty username error = %v", err)
	}

	if _, _, err := c.Create(ctx, "alice"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := c.Create(ctx, "alice"); !apperrors.IsCode(err, apperrors.CodeUsernameTaken) {
		t.Fatalf("taken username error = %v", err)
	}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, created, err := c.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := c.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("username = %q", byID.Username)
	}

	byName, err := c.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("id = %q, want %q", byName.ID, created.ID)
	}

	if _, err := c.GetUserByID(ctx, "missing"); !apperrors.IsCode(err, apperrors.CodeUserNotFound) {
		t.Fatalf("missing id error = %v", err)
	}
	if _, err := c.GetUserByUsername(ctx, "nobody"); !apperrors.IsCode(err, apperrors.CodeUserNotFound) {
		t.Fatalf("missing username error = %v", err)
	}
}

func TestUpdateUsername(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, alice, err := c.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := c.Create(ctx, "bob"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.UpdateUsername(ctx, alice.ID, "bob"); !apperrors.IsCode(err, apperrors.CodeUsernameTaken) {
		t.Fatalf("rename to taken error = %v", err)
	}

	if _, err := c.UpdateUsername(ctx, alice.ID, "alicia"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	renamed, err := c.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if renamed.Username != "alicia" {
		t.Errorf("username = %q, want alicia", renamed.Username)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, alice, err := c.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.GetUserByID(ctx, alice.ID); !apperrors.IsCode(err, apperrors.CodeUserNotFound) {
		t.Fatalf("deleted user error = %v", err)
	}
}

func TestIDsToUsernames(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, alice, err := c.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, bob, err := c.Create(ctx, "bob")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Output stays index-aligned with input, repeats included, and ids
	// that no longer resolve map to the placeholder.
	usernames, err := c.IDsToUsernames(ctx, []string{bob.ID, "gone", alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("ids to usernames: %v", err)
	}
	want := []string{"bob", DeletedUserPlaceholder, "alice", "bob"}
	if len(usernames) != len(want) {
		t.Fatalf("got %d usernames, want %d", len(usernames), len(want))
	}
	for i := range want {
		if usernames[i] != want[i] {
			t.Errorf("usernames[%d] = %q, want %q", i, usernames[i], want[i])
		}
	}
}
