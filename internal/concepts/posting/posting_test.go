package posting

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
	return New(db, "posts")
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)

	msg, post, err := c.Create(ctx, "u1", "first post")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg != "Post successfully created!" {
		t.Errorf("message = %q", msg)
	}
	if post == nil || post.ID == "" || post.Content != "first post" {
		t.Fatalf("post = %+v", post)
	}

	if _, _, err := c.Create(ctx, "u1", "  "); !apperrors.IsCode(err, apperrors.CodeBadValues) {
		t.Fatalf("empty content error = %v", err)
	}
}

func TestGetPosts(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	for _, p := range []struct{ author, content string }{
		{"u1", "one"}, {"u2", "two"}, {"u1", "three"},
	} {
		if _, _, err := c.Create(ctx, p.author, p.content); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := c.GetPosts(ctx)
	if err != nil {
		t.Fatalf("get posts: %v", err)
	}
	if len(all) != 3 || all[0].Content != "three" {
		t.Fatalf("all = %+v", all)
	}

	mine, err := c.GetByAuthor(ctx, "u1")
	if err != nil {
		t.Fatalf("get by author: %v", err)
	}
	if len(mine) != 2 || mine[0].Content != "three" || mine[1].Content != "one" {
		t.Fatalf("mine = %+v", mine)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, post, err := c.Create(ctx, "u1", "draft")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.Update(ctx, post.ID, "final"); err != nil {
		t.Fatalf("update: %v", err)
	}
	posts, err := c.GetByAuthor(ctx, "u1")
	if err != nil {
		t.Fatalf("get by author: %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "final" {
		t.Fatalf("posts = %+v", posts)
	}

	if _, err := c.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.AssertAuthorIsUser(ctx, post.ID, "u1"); !apperrors.IsCode(err, apperrors.CodePostNotFound) {
		t.Fatalf("deleted post error = %v", err)
	}
}

func TestAssertAuthorIsUser(t *testing.T) {
	ctx := context.Background()
	c := newTestConcept(t)
	_, post, err := c.Create(ctx, "u1", "mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := c.AssertAuthorIsUser(ctx, post.ID, "u1"); err != nil {
		t.Fatalf("author check for owner: %v", err)
	}
	if err := c.AssertAuthorIsUser(ctx, post.ID, "u2"); !apperrors.IsCode(err, apperrors.CodePostAuthorMismatch) {
		t.Fatalf("wrong author error = %v", err)
	}
}
