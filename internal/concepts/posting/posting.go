// Package posting manages short text posts.
package posting

import (
	"context"
	"fmt"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// PostDoc is one post record.
type PostDoc struct {
	docstore.Base
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Concept owns the posts collection.
type Concept struct {
	posts *docstore.Collection[PostDoc]
}

// New creates the posting concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{posts: docstore.NewCollection[PostDoc](db, collection)}
}

// Create creates a post and returns the freshly read record.
func (c *Concept) Create(ctx context.Context, author, content string) (string, *PostDoc, error) {
	if strings.TrimSpace(author) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "author is required")
	}
	if strings.TrimSpace(content) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "content is required")
	}

	id, err := c.posts.CreateOne(ctx, PostDoc{Author: author, Content: content})
	if err != nil {
		return "", nil, fmt.Errorf("create post: %w", err)
	}
	post, err := c.posts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read post: %w", err)
	}
	return "Post successfully created!", post, nil
}

// GetPosts returns all posts, newest first.
func (c *Concept) GetPosts(ctx context.Context) ([]PostDoc, error) {
	posts, err := c.posts.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	return posts, nil
}

// GetByAuthor returns the author's posts, newest first.
func (c *Concept) GetByAuthor(ctx context.Context, author string) ([]PostDoc, error) {
	posts, err := c.posts.ReadMany(ctx, docstore.Filter{"author": author}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read posts by author: %w", err)
	}
	return posts, nil
}

// Update replaces the post's content.
func (c *Concept) Update(ctx context.Context, id, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", apperrors.New(apperrors.CodeBadValues, "content is required")
	}
	if err := c.posts.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{"content": content}); err != nil {
		return "", fmt.Errorf("update post: %w", err)
	}
	return "Post successfully updated!", nil
}

// Delete removes the post.
func (c *Concept) Delete(ctx context.Context, id string) (string, error) {
	if err := c.posts.DeleteOne(ctx, docstore.Filter{"id": id}); err != nil {
		return "", fmt.Errorf("delete post: %w", err)
	}
	return "Post deleted successfully!", nil
}

// AssertAuthorIsUser fails when the post does not exist or its author is
// not the given user. Existence is checked first.
func (c *Concept) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	post, err := c.posts.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read post: %w", err)
	}
	if post == nil {
		return apperrors.WithMetadata(apperrors.CodePostNotFound,
			fmt.Sprintf("post %s does not exist", id), map[string]string{"Post": id})
	}
	if post.Author != user {
		return apperrors.WithMetadata(apperrors.CodePostAuthorMismatch,
			fmt.Sprintf("%s is not the author of post %s", user, id),
			map[string]string{"User": user, "Post": id})
	}
	return nil
}
