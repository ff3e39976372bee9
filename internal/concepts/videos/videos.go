// Package videos manages video link records.
package videos

import (
	"context"
	"fmt"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// VideoDoc is one video link record.
type VideoDoc struct {
	docstore.Base
	Author      string `json:"author"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Concept owns the videos collection.
type Concept struct {
	videos *docstore.Collection[VideoDoc]
}

// New creates the videos concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{videos: docstore.NewCollection[VideoDoc](db, collection)}
}

// CreateVideo creates a video link and returns the freshly read record.
func (c *Concept) CreateVideo(ctx context.Context, author, url, description string) (string, *VideoDoc, error) {
	if strings.TrimSpace(author) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "author is required")
	}
	if strings.TrimSpace(url) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "url is required")
	}

	id, err := c.videos.CreateOne(ctx, VideoDoc{Author: author, URL: url, Description: description})
	if err != nil {
		return "", nil, fmt.Errorf("create video: %w", err)
	}
	video, err := c.videos.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read video: %w", err)
	}
	return "Video created successfully!", video, nil
}

// DeleteVideo removes the video link.
func (c *Concept) DeleteVideo(ctx context.Context, id string) (string, error) {
	if err := c.videos.DeleteOne(ctx, docstore.Filter{"id": id}); err != nil {
		return "", fmt.Errorf("delete video: %w", err)
	}
	return "Video deleted successfully!", nil
}

// GetVideos returns all videos, newest first.
func (c *Concept) GetVideos(ctx context.Context) ([]VideoDoc, error) {
	videos, err := c.videos.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read videos: %w", err)
	}
	return videos, nil
}

// GetByAuthor returns the author's videos, newest first.
func (c *Concept) GetByAuthor(ctx context.Context, author string) ([]VideoDoc, error) {
	videos, err := c.videos.ReadMany(ctx, docstore.Filter{"author": author}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read videos by author: %w", err)
	}
	return videos, nil
}

// AssertAuthorIsUser fails when the video does not exist or its author is
// not the given user. Existence is checked first.
func (c *Concept) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	video, err := c.videos.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read video: %w", err)
	}
	if video == nil {
		return apperrors.WithMetadata(apperrors.CodeVideoNotFound,
			fmt.Sprintf("video %s does not exist", id), map[string]string{"Video": id})
	}
	if video.Author != user {
		return apperrors.WithMetadata(apperrors.CodeVideoAuthorMismatch,
			fmt.Sprintf("%s is not the author of video %s", user, id),
			map[string]string{"User": user, "Video": id})
	}
	return nil
}
