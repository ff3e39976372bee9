// Package app wires the concepts together. It is the only place where one
// concept's output feeds another concept's input; the concepts themselves
// never reference each other.
package app

import (
	"context"

	"github.com/stagecall/stagecall/internal/concepts/authing"
	"github.com/stagecall/stagecall/internal/concepts/events"
	"github.com/stagecall/stagecall/internal/concepts/friending"
	"github.com/stagecall/stagecall/internal/concepts/inviting"
	"github.com/stagecall/stagecall/internal/concepts/mapping"
	"github.com/stagecall/stagecall/internal/concepts/organizations"
	"github.com/stagecall/stagecall/internal/concepts/posting"
	"github.com/stagecall/stagecall/internal/concepts/videos"
	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// App owns one instance of every concept plus the read-side response
// formatter and the error registry.
type App struct {
	Authing       *authing.Concept
	Posting       *posting.Concept
	Videos        *videos.Concept
	Organizations *organizations.Concept
	Events        *events.Concept
	Inviting      *inviting.Concept
	Friending     *friending.Concept
	Mapping       *mapping.Concept

	Responses *Responses
	Errors    *apperrors.Registry
}

// New builds the app over the given store.
func New(db *docstore.DB) *App {
	a := &App{
		Authing:       authing.New(db, "users"),
		Posting:       posting.New(db, "posts"),
		Videos:        videos.New(db, "videos"),
		Organizations: organizations.New(db, "organizations"),
		Events:        events.New(db, "events"),
		Inviting:      inviting.New(db, "invites"),
		Friending:     friending.New(db, "friends"),
		Mapping:       mapping.New(db, "map"),
		Errors:        apperrors.NewRegistry(),
	}
	a.Responses = NewResponses(a.Authing, a.Events)
	a.registerErrorFormatters()
	return a
}

// SendInvite invites the named user to an event on behalf of the acting
// user. Users already attending the event are rejected up front, before the
// inviting concept is consulted.
func (a *App) SendInvite(ctx context.Context, actor, toUsername, eventID string) (string, error) {
	to, err := a.Authing.GetUserByUsername(ctx, toUsername)
	if err != nil {
		return "", err
	}
	if err := a.Events.AssertUserNotAttendee(ctx, eventID, to.ID); err != nil {
		return "", err
	}
	return a.Inviting.SendInvite(ctx, eventID, actor, to.ID)
}

// RemoveInvite withdraws the acting user's pending invite to the named user.
func (a *App) RemoveInvite(ctx context.Context, actor, toUsername, eventID string) (string, error) {
	to, err := a.Authing.GetUserByUsername(ctx, toUsername)
	if err != nil {
		return "", err
	}
	return a.Inviting.RemoveInvite(ctx, eventID, actor, to.ID)
}

// AcceptInvite accepts a pending invite from the named user and then adds
// the acting user to the event's attendee list. The invite transition
// completes before the attendee mutation is issued, so a failed transition
// never leaves a stray attendee.
func (a *App) AcceptInvite(ctx context.Context, actor, fromUsername, eventID string) (string, error) {
	from, err := a.Authing.GetUserByUsername(ctx, fromUsername)
	if err != nil {
		return "", err
	}
	msg, err := a.Inviting.AcceptInvite(ctx, eventID, from.ID, actor)
	if err != nil {
		return "", err
	}
	if _, err := a.Events.AddAttendee(ctx, eventID, actor); err != nil {
		return "", err
	}
	return msg, nil
}

// RejectInvite rejects a pending invite from the named user.
func (a *App) RejectInvite(ctx context.Context, actor, fromUsername, eventID string) (string, error) {
	from, err := a.Authing.GetUserByUsername(ctx, fromUsername)
	if err != nil {
		return "", err
	}
	return a.Inviting.RejectInvite(ctx, eventID, from.ID, actor)
}

// GetInvites returns the acting user's invites, enriched for display.
func (a *App) GetInvites(ctx context.Context, actor string) ([]InviteView, error) {
	invites, err := a.Inviting.GetInvites(ctx, actor)
	if err != nil {
		return nil, err
	}
	return a.Responses.Invites(ctx, invites)
}

// SendFriendRequest sends a friend request to the named user on behalf of
// the acting user.
func (a *App) SendFriendRequest(ctx context.Context, actor, toUsername string) (string, error) {
	to, err := a.Authing.GetUserByUsername(ctx, toUsername)
	if err != nil {
		return "", err
	}
	return a.Friending.SendRequest(ctx, actor, to.ID)
}

// RemoveFriendRequest withdraws the acting user's pending request to the
// named user.
func (a *App) RemoveFriendRequest(ctx context.Context, actor, toUsername string) (string, error) {
	to, err := a.Authing.GetUserByUsername(ctx, toUsername)
	if err != nil {
		return "", err
	}
	return a.Friending.RemoveRequest(ctx, actor, to.ID)
}

// AcceptFriendRequest accepts a pending request from the named user.
func (a *App) AcceptFriendRequest(ctx context.Context, actor, fromUsername string) (string, error) {
	from, err := a.Authing.GetUserByUsername(ctx, fromUsername)
	if err != nil {
		return "", err
	}
	return a.Friending.AcceptRequest(ctx, from.ID, actor)
}

// RejectFriendRequest rejects a pending request from the named user.
func (a *App) RejectFriendRequest(ctx context.Context, actor, fromUsername string) (string, error) {
	from, err := a.Authing.GetUserByUsername(ctx, fromUsername)
	if err != nil {
		return "", err
	}
	return a.Friending.RejectRequest(ctx, from.ID, actor)
}

// GetFriendRequests returns the acting user's requests, enriched for
// display.
func (a *App) GetFriendRequests(ctx context.Context, actor string) ([]FriendRequestView, error) {
	requests, err := a.Friending.GetRequests(ctx, actor)
	if err != nil {
		return nil, err
	}
	return a.Responses.FriendRequests(ctx, requests)
}

// GetFriends returns the usernames of the acting user's friends.
func (a *App) GetFriends(ctx context.Context, actor string) ([]string, error) {
	ids, err := a.Friending.GetFriends(ctx, actor)
	if err != nil {
		return nil, err
	}
	return a.Authing.IDsToUsernames(ctx, ids)
}

// RemoveFriend dissolves the acting user's friendship with the named user.
func (a *App) RemoveFriend(ctx context.Context, actor, friendUsername string) (string, error) {
	friend, err := a.Authing.GetUserByUsername(ctx, friendUsername)
	if err != nil {
		return "", err
	}
	return a.Friending.RemoveFriend(ctx, actor, friend.ID)
}

// CreatePost creates a post authored by the acting user.
func (a *App) CreatePost(ctx context.Context, actor, content string) (string, *PostView, error) {
	msg, post, err := a.Posting.Create(ctx, actor, content)
	if err != nil {
		return "", nil, err
	}
	view, err := a.Responses.Post(ctx, post)
	if err != nil {
		return "", nil, err
	}
	return msg, view, nil
}

// GetPosts returns all posts, or one author's posts when username is
// non-empty, enriched for display.
func (a *App) GetPosts(ctx context.Context, username string) ([]PostView, error) {
	var (
		posts []posting.PostDoc
		err   error
	)
	if username == "" {
		posts, err = a.Posting.GetPosts(ctx)
	} else {
		var author *authing.UserDoc
		author, err = a.Authing.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		posts, err = a.Posting.GetByAuthor(ctx, author.ID)
	}
	if err != nil {
		return nil, err
	}
	return a.Responses.Posts(ctx, posts)
}

// UpdatePost replaces a post's content after checking ownership.
func (a *App) UpdatePost(ctx context.Context, actor, id, content string) (string, error) {
	if err := a.Posting.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Posting.Update(ctx, id, content)
}

// DeletePost removes a post after checking ownership.
func (a *App) DeletePost(ctx context.Context, actor, id string) (string, error) {
	if err := a.Posting.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Posting.Delete(ctx, id)
}

// CreateVideo creates a video link authored by the acting user.
func (a *App) CreateVideo(ctx context.Context, actor, url, description string) (string, *VideoView, error) {
	msg, video, err := a.Videos.CreateVideo(ctx, actor, url, description)
	if err != nil {
		return "", nil, err
	}
	view, err := a.Responses.Video(ctx, video)
	if err != nil {
		return "", nil, err
	}
	return msg, view, nil
}

// GetVideos returns all videos, or one author's videos when username is
// non-empty, enriched for display.
func (a *App) GetVideos(ctx context.Context, username string) ([]VideoView, error) {
	var (
		vids []videos.VideoDoc
		err  error
	)
	if username == "" {
		vids, err = a.Videos.GetVideos(ctx)
	} else {
		var author *authing.UserDoc
		author, err = a.Authing.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		vids, err = a.Videos.GetByAuthor(ctx, author.ID)
	}
	if err != nil {
		return nil, err
	}
	return a.Responses.Videos(ctx, vids)
}

// DeleteVideo removes a video after checking ownership.
func (a *App) DeleteVideo(ctx context.Context, actor, id string) (string, error) {
	if err := a.Videos.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Videos.DeleteVideo(ctx, id)
}

// CreateEvent creates an event authored by the acting user.
func (a *App) CreateEvent(ctx context.Context, actor, name, eventTime, location string, price float64, description string) (string, *EventView, error) {
	msg, event, err := a.Events.CreateEvent(ctx, actor, name, eventTime, location, price, description)
	if err != nil {
		return "", nil, err
	}
	view, err := a.Responses.Event(ctx, event)
	if err != nil {
		return "", nil, err
	}
	return msg, view, nil
}

// GetEvent returns one event, enriched for display.
func (a *App) GetEvent(ctx context.Context, id string) (*EventView, error) {
	event, err := a.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Responses.Event(ctx, event)
}

// GetAllEvents returns every event, enriched for display.
func (a *App) GetAllEvents(ctx context.Context) ([]EventView, error) {
	all, err := a.Events.GetEvents(ctx)
	if err != nil {
		return nil, err
	}
	return a.Responses.Events(ctx, all)
}

// UpdateEvent patches an event's canonical fields after checking ownership.
func (a *App) UpdateEvent(ctx context.Context, actor, id string, patch events.EventPatch) (string, error) {
	if err := a.Events.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Events.UpdateEvent(ctx, id, patch)
}

// DeleteEvent removes an event after checking ownership.
func (a *App) DeleteEvent(ctx context.Context, actor, id string) (string, error) {
	if err := a.Events.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Events.DeleteEvent(ctx, id)
}

// EventListOp names one mutation on an event's string sets.
type EventListOp func(ctx context.Context, id, value string) (string, error)

// MutateEventList runs a list mutation after checking ownership. The op is
// one of the events concept's add/delete list methods.
func (a *App) MutateEventList(ctx context.Context, actor, id, value string, op EventListOp) (string, error) {
	if err := a.Events.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return op(ctx, id, value)
}

// CreateOrg creates an organization authored by the acting user.
func (a *App) CreateOrg(ctx context.Context, actor, name, description string, private bool) (string, *OrgView, error) {
	msg, org, err := a.Organizations.CreateOrg(ctx, actor, name, description, private)
	if err != nil {
		return "", nil, err
	}
	view, err := a.Responses.Org(ctx, org)
	if err != nil {
		return "", nil, err
	}
	return msg, view, nil
}

// GetOrg returns one organization, enriched for display.
func (a *App) GetOrg(ctx context.Context, id string) (*OrgView, error) {
	org, err := a.Organizations.GetOrg(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Responses.Org(ctx, org)
}

// GetAllOrgs returns every organization, enriched for display.
func (a *App) GetAllOrgs(ctx context.Context) ([]OrgView, error) {
	orgs, err := a.Organizations.GetAllOrgs(ctx)
	if err != nil {
		return nil, err
	}
	return a.Responses.Orgs(ctx, orgs)
}

// UpdateOrg patches an organization after checking ownership.
func (a *App) UpdateOrg(ctx context.Context, actor, id string, name, description *string) (string, error) {
	if err := a.Organizations.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Organizations.UpdateOrg(ctx, id, name, description)
}

// DeleteOrg removes an organization after checking ownership.
func (a *App) DeleteOrg(ctx context.Context, actor, id string) (string, error) {
	if err := a.Organizations.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Organizations.DeleteOrg(ctx, id)
}

// AddOrgMember adds a member after checking ownership.
func (a *App) AddOrgMember(ctx context.Context, actor, id, member string) (string, error) {
	if err := a.Organizations.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Organizations.AddMember(ctx, id, member)
}

// DeleteOrgMember removes a member after checking ownership.
func (a *App) DeleteOrgMember(ctx context.Context, actor, id, member string) (string, error) {
	if err := a.Organizations.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	return a.Organizations.DeleteMember(ctx, id, member)
}

// SetOrgPrivacy toggles an organization's privacy after checking ownership.
func (a *App) SetOrgPrivacy(ctx context.Context, actor, id string, private bool) (string, error) {
	if err := a.Organizations.AssertAuthorIsUser(ctx, id, actor); err != nil {
		return "", err
	}
	if private {
		return a.Organizations.MakePrivate(ctx, id)
	}
	return a.Organizations.MakePublic(ctx, id)
}
