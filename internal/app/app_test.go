package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stagecall/stagecall/internal/concepts/authing"
	"github.com/stagecall/stagecall/internal/concepts/events"
	"github.com/stagecall/stagecall/internal/concepts/inviting"
	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func mustCreateUser(t *testing.T, a *App, username string) *authing.UserDoc {
	t.Helper()
	_, user, err := a.Authing.Create(context.Background(), username)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateEvent(t *testing.T, a *App, author, name string) *events.EventDoc {
	t.Helper()
	_, event, err := a.Events.CreateEvent(context.Background(), author, name, "2026-09-01T20:00", "Main Hall", 25, "show")
	if err != nil {
		t.Fatalf("create event %s: %v", name, err)
	}
	return event
}

func TestInviteAcceptEndToEnd(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("send invite: %v", err)
	}
	msg, err := a.AcceptInvite(ctx, u2.ID, "alice", event.ID)
	if err != nil {
		t.Fatalf("accept invite: %v", err)
	}
	if msg != "Accepted invite!" {
		t.Errorf("message = %q", msg)
	}

	// Exactly one invite record remains, in the accepted state.
	invites, err := a.Inviting.GetInvites(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get invites: %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("got %d invite records, want 1", len(invites))
	}
	record := invites[0]
	if record.Event != event.ID || record.From != u1.ID || record.To != u2.ID || record.Status != inviting.StatusAccepted {
		t.Errorf("record = %+v", record)
	}

	// The accepting user appears in the attendee list exactly once.
	got, err := a.Events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	var count int
	for _, attendee := range got.Attendees {
		if attendee == u2.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("attendees = %v, want %s exactly once", got.Attendees, u2.ID)
	}
}

func TestSendInviteToAttendeeBlocked(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.Events.AddAttendee(ctx, event.ID, u2.ID); err != nil {
		t.Fatalf("add attendee: %v", err)
	}

	// The attendee check runs before the inviting concept: no invite
	// record is created.
	_, err := a.SendInvite(ctx, u1.ID, "bob", event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventAlreadyAttendee) {
		t.Fatalf("invite to attendee error = %v, want %s", err, apperrors.CodeEventAlreadyAttendee)
	}
	invites, err := a.Inviting.GetInvites(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get invites: %v", err)
	}
	if len(invites) != 0 {
		t.Fatalf("got %d invite records, want 0", len(invites))
	}
}

func TestSendInviteDuplicateThenTerminal(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("send invite: %v", err)
	}
	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); !apperrors.IsCode(err, apperrors.CodeInviteAlreadyExists) {
		t.Fatalf("duplicate send error = %v", err)
	}
	if _, err := a.RejectInvite(ctx, u2.ID, "alice", event.ID); err != nil {
		t.Fatalf("reject invite: %v", err)
	}
	// After a terminal transition the triple is free again.
	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("resend after reject: %v", err)
	}
}

func TestGetInvitesEnriched(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("send invite: %v", err)
	}

	views, err := a.GetInvites(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get invites: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	view := views[0]
	if view.From != "alice" || view.To != "bob" || view.Event != "Showcase" {
		t.Errorf("view = %+v, want usernames and event name", view)
	}
}

func TestGetInvitesDeletedEventPlaceholder(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("send invite: %v", err)
	}
	if _, err := a.Events.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	// The view stays index-aligned even though the event is gone.
	views, err := a.GetInvites(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get invites: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Event != events.DeletedEventPlaceholder {
		t.Errorf("event label = %q, want %q", views[0].Event, events.DeletedEventPlaceholder)
	}
}

func TestPostsEnrichment(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")

	if _, _, err := a.CreatePost(ctx, u1.ID, "hello"); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, _, err := a.CreatePost(ctx, u2.ID, "hi"); err != nil {
		t.Fatalf("create post: %v", err)
	}

	posts, err := a.GetPosts(ctx, "")
	if err != nil {
		t.Fatalf("get posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Author != "bob" || posts[1].Author != "alice" {
		t.Errorf("authors = %q, %q", posts[0].Author, posts[1].Author)
	}

	mine, err := a.GetPosts(ctx, "alice")
	if err != nil {
		t.Fatalf("get posts by author: %v", err)
	}
	if len(mine) != 1 || mine[0].Author != "alice" {
		t.Errorf("mine = %+v", mine)
	}
}

func TestOwnershipGuards(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")

	_, post, err := a.CreatePost(ctx, u1.ID, "mine")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := a.UpdatePost(ctx, u2.ID, post.ID, "stolen"); !apperrors.IsCode(err, apperrors.CodePostAuthorMismatch) {
		t.Fatalf("update as non-author error = %v", err)
	}
	if _, err := a.DeletePost(ctx, u2.ID, post.ID); !apperrors.IsCode(err, apperrors.CodePostAuthorMismatch) {
		t.Fatalf("delete as non-author error = %v", err)
	}

	event := mustCreateEvent(t, a, u1.ID, "Showcase")
	if _, err := a.MutateEventList(ctx, u2.ID, event.ID, "tap", a.Events.AddGenre); !apperrors.IsCode(err, apperrors.CodeEventAuthorMismatch) {
		t.Fatalf("list mutation as non-author error = %v", err)
	}
	if _, err := a.MutateEventList(ctx, u1.ID, event.ID, "tap", a.Events.AddGenre); err != nil {
		t.Fatalf("list mutation as author: %v", err)
	}
}

func TestRenderedErrorsUseLabels(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	if _, err := a.SendInvite(ctx, u1.ID, "bob", event.ID); err != nil {
		t.Fatalf("send invite: %v", err)
	}
	_, err := a.SendInvite(ctx, u1.ID, "bob", event.ID)
	if err == nil {
		t.Fatal("expected duplicate invite error")
	}

	// The registered formatter replaces ids with usernames.
	msg, status := a.Errors.Render(ctx, "", err)
	if !strings.Contains(msg, "alice") || !strings.Contains(msg, "bob") {
		t.Errorf("rendered message = %q, want usernames", msg)
	}
	if strings.Contains(msg, u1.ID) || strings.Contains(msg, u2.ID) {
		t.Errorf("rendered message %q leaks raw ids", msg)
	}
	if status != 409 {
		t.Errorf("status = %d, want 409", status)
	}
}

func TestRenderAuthorMismatchResolvesEventName(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	event := mustCreateEvent(t, a, u1.ID, "Showcase")

	_, err := a.DeleteEvent(ctx, u2.ID, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventAuthorMismatch) {
		t.Fatalf("delete as non-author error = %v", err)
	}

	msg, status := a.Errors.Render(ctx, "", err)
	if !strings.Contains(msg, "bob") || !strings.Contains(msg, "Showcase") {
		t.Errorf("rendered message = %q, want username and event name", msg)
	}
	if status != 403 {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestFriendRequestAcceptEndToEnd(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")

	if _, err := a.SendFriendRequest(ctx, u1.ID, "bob"); err != nil {
		t.Fatalf("send friend request: %v", err)
	}
	msg, err := a.AcceptFriendRequest(ctx, u2.ID, "alice")
	if err != nil {
		t.Fatalf("accept friend request: %v", err)
	}
	if msg != "Accepted request!" {
		t.Errorf("message = %q", msg)
	}

	// Both sides see the friendship under the other's username.
	friends, err := a.GetFriends(ctx, u1.ID)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 1 || friends[0] != "bob" {
		t.Errorf("friends of alice = %v", friends)
	}
	friends, err = a.GetFriends(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 1 || friends[0] != "alice" {
		t.Errorf("friends of bob = %v", friends)
	}

	if _, err := a.RemoveFriend(ctx, u2.ID, "alice"); err != nil {
		t.Fatalf("remove friend: %v", err)
	}
	friends, err = a.GetFriends(ctx, u1.ID)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("friends after unfriend = %v", friends)
	}
}

func TestGetFriendRequestsEnriched(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	u2 := mustCreateUser(t, a, "bob")
	mustCreateUser(t, a, "carol")

	if _, err := a.SendFriendRequest(ctx, u1.ID, "bob"); err != nil {
		t.Fatalf("send friend request: %v", err)
	}
	if _, err := a.SendFriendRequest(ctx, u2.ID, "carol"); err != nil {
		t.Fatalf("send friend request: %v", err)
	}

	// Both records involve bob; each view reads its pair from the aligned
	// halves of one concatenated lookup.
	views, err := a.GetFriendRequests(ctx, u2.ID)
	if err != nil {
		t.Fatalf("get friend requests: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	pairs := map[string]string{}
	for _, view := range views {
		pairs[view.From] = view.To
	}
	if pairs["alice"] != "bob" || pairs["bob"] != "carol" {
		t.Errorf("views = %+v, want alice->bob and bob->carol", views)
	}
}

func TestRenderedFriendErrorsUseLabels(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	u1 := mustCreateUser(t, a, "alice")
	mustCreateUser(t, a, "bob")

	if _, err := a.SendFriendRequest(ctx, u1.ID, "bob"); err != nil {
		t.Fatalf("send friend request: %v", err)
	}
	_, err := a.SendFriendRequest(ctx, u1.ID, "bob")
	if !apperrors.IsCode(err, apperrors.CodeFriendRequestAlreadyExists) {
		t.Fatalf("duplicate send error = %v", err)
	}

	msg, status := a.Errors.Render(ctx, "", err)
	if !strings.Contains(msg, "alice") || !strings.Contains(msg, "bob") {
		t.Errorf("rendered message = %q, want usernames", msg)
	}
	if strings.Contains(msg, u1.ID) {
		t.Errorf("rendered message %q leaks raw ids", msg)
	}
	if status != 409 {
		t.Errorf("status = %d, want 409", status)
	}
}
