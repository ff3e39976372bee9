package app

import (
	"context"
	"sync"
	"time"

	"github.com/stagecall/stagecall/internal/concepts/authing"
	"github.com/stagecall/stagecall/internal/concepts/events"
	"github.com/stagecall/stagecall/internal/concepts/friending"
	"github.com/stagecall/stagecall/internal/concepts/inviting"
	"github.com/stagecall/stagecall/internal/concepts/organizations"
	"github.com/stagecall/stagecall/internal/concepts/posting"
	"github.com/stagecall/stagecall/internal/concepts/videos"
)

// PostView is a post with its author id replaced by the username.
type PostView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

// VideoView is a video with its author id replaced by the username.
type VideoView struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      string    `json:"author"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
}

// EventView is an event with its author id replaced by the username.
type EventView struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Author         string    `json:"author"`
	Name           string    `json:"name"`
	Time           string    `json:"time"`
	Location       string    `json:"location"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	Choreographers []string  `json:"choreographers"`
	Genres         []string  `json:"genres"`
	Props          []string  `json:"props"`
	Attendees      []string  `json:"attendees"`
}

// OrgView is an organization with its author id replaced by the username.
type OrgView struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      string    `json:"author"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Private     bool      `json:"private"`
	Members     []string  `json:"members"`
}

// InviteView is an invite with user ids replaced by usernames and the event
// id replaced by the event name.
type InviteView struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Event     string          `json:"event"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Status    inviting.Status `json:"status"`
}

// FriendRequestView is a friend request with user ids replaced by usernames.
type FriendRequestView struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Status    friending.Status `json:"status"`
}

// Responses translates internal identifiers in concept output into labels a
// client can display. Singular conversions use individual lookups; plural
// conversions use one batched lookup per referenced field so the number of
// cross-concept calls stays constant in the number of records.
type Responses struct {
	authing *authing.Concept
	events  *events.Concept
}

// NewResponses builds the response formatter over the lookup concepts.
func NewResponses(authing *authing.Concept, events *events.Concept) *Responses {
	return &Responses{authing: authing, events: events}
}

// Post converts a post for display. A nil post stays nil.
func (r *Responses) Post(ctx context.Context, post *posting.PostDoc) (*PostView, error) {
	if post == nil {
		return nil, nil
	}
	author, err := r.authing.GetUserByID(ctx, post.Author)
	if err != nil {
		return nil, err
	}
	return &PostView{
		ID: post.ID, CreatedAt: post.CreatedAt, UpdatedAt: post.UpdatedAt,
		Author: author.Username, Content: post.Content,
	}, nil
}

// Posts converts posts for display with a single batched username lookup.
func (r *Responses) Posts(ctx context.Context, posts []posting.PostDoc) ([]PostView, error) {
	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.Author
	}
	authors, err := r.authing.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, post := range posts {
		views[i] = PostView{
			ID: post.ID, CreatedAt: post.CreatedAt, UpdatedAt: post.UpdatedAt,
			Author: authors[i], Content: post.Content,
		}
	}
	return views, nil
}

// Video converts a video for display. A nil video stays nil.
func (r *Responses) Video(ctx context.Context, video *videos.VideoDoc) (*VideoView, error) {
	if video == nil {
		return nil, nil
	}
	author, err := r.authing.GetUserByID(ctx, video.Author)
	if err != nil {
		return nil, err
	}
	return &VideoView{
		ID: video.ID, CreatedAt: video.CreatedAt, UpdatedAt: video.UpdatedAt,
		Author: author.Username, URL: video.URL, Description: video.Description,
	}, nil
}

// Videos converts videos for display with a single batched username lookup.
func (r *Responses) Videos(ctx context.Context, vids []videos.VideoDoc) ([]VideoView, error) {
	ids := make([]string, len(vids))
	for i, video := range vids {
		ids[i] = video.Author
	}
	authors, err := r.authing.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]VideoView, len(vids))
	for i, video := range vids {
		views[i] = VideoView{
			ID: video.ID, CreatedAt: video.CreatedAt, UpdatedAt: video.UpdatedAt,
			Author: authors[i], URL: video.URL, Description: video.Description,
		}
	}
	return views, nil
}

// Event converts an event for display. A nil event stays nil.
func (r *Responses) Event(ctx context.Context, event *events.EventDoc) (*EventView, error) {
	if event == nil {
		return nil, nil
	}
	author, err := r.authing.GetUserByID(ctx, event.Author)
	if err != nil {
		return nil, err
	}
	return eventView(event, author.Username), nil
}

// Events converts events for display with a single batched username lookup.
func (r *Responses) Events(ctx context.Context, all []events.EventDoc) ([]EventView, error) {
	ids := make([]string, len(all))
	for i, event := range all {
		ids[i] = event.Author
	}
	authors, err := r.authing.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]EventView, len(all))
	for i, event := range all {
		views[i] = *eventView(&event, authors[i])
	}
	return views, nil
}

// Org converts an organization for display. A nil organization stays nil.
func (r *Responses) Org(ctx context.Context, org *organizations.OrgDoc) (*OrgView, error) {
	if org == nil {
		return nil, nil
	}
	author, err := r.authing.GetUserByID(ctx, org.Author)
	if err != nil {
		return nil, err
	}
	return &OrgView{
		ID: org.ID, CreatedAt: org.CreatedAt, UpdatedAt: org.UpdatedAt,
		Author: author.Username, Name: org.Name, Description: org.Description,
		Private: org.Private, Members: org.Members,
	}, nil
}

// Orgs converts organizations for display with a single batched username
// lookup.
func (r *Responses) Orgs(ctx context.Context, orgs []organizations.OrgDoc) ([]OrgView, error) {
	ids := make([]string, len(orgs))
	for i, org := range orgs {
		ids[i] = org.Author
	}
	authors, err := r.authing.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]OrgView, len(orgs))
	for i, org := range orgs {
		views[i] = OrgView{
			ID: org.ID, CreatedAt: org.CreatedAt, UpdatedAt: org.UpdatedAt,
			Author: authors[i], Name: org.Name, Description: org.Description,
			Private: org.Private, Members: org.Members,
		}
	}
	return views, nil
}

// Invite converts an invite for display. A nil invite stays nil.
func (r *Responses) Invite(ctx context.Context, invite *inviting.InviteDoc) (*InviteView, error) {
	if invite == nil {
		return nil, nil
	}
	from, err := r.authing.GetUserByID(ctx, invite.From)
	if err != nil {
		return nil, err
	}
	to, err := r.authing.GetUserByID(ctx, invite.To)
	if err != nil {
		return nil, err
	}
	event, err := r.events.GetByID(ctx, invite.Event)
	if err != nil {
		return nil, err
	}
	return &InviteView{
		ID: invite.ID, CreatedAt: invite.CreatedAt, UpdatedAt: invite.UpdatedAt,
		Event: event.Name, From: from.Username, To: to.Username, Status: invite.Status,
	}, nil
}

// Invites converts invites for display. The three referenced fields are
// resolved with one batched lookup each, issued concurrently; all must
// complete before the views are assembled.
func (r *Responses) Invites(ctx context.Context, invites []inviting.InviteDoc) ([]InviteView, error) {
	fromIDs := make([]string, len(invites))
	toIDs := make([]string, len(invites))
	eventIDs := make([]string, len(invites))
	for i, invite := range invites {
		fromIDs[i] = invite.From
		toIDs[i] = invite.To
		eventIDs[i] = invite.Event
	}

	var (
		wg                       sync.WaitGroup
		froms, tos, names        []string
		fromErr, toErr, eventErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		froms, fromErr = r.authing.IDsToUsernames(ctx, fromIDs)
	}()
	go func() {
		defer wg.Done()
		tos, toErr = r.authing.IDsToUsernames(ctx, toIDs)
	}()
	go func() {
		defer wg.Done()
		names, eventErr = r.events.IDsToNames(ctx, eventIDs)
	}()
	wg.Wait()

	for _, err := range []error{fromErr, toErr, eventErr} {
		if err != nil {
			return nil, err
		}
	}

	views := make([]InviteView, len(invites))
	for i, invite := range invites {
		views[i] = InviteView{
			ID: invite.ID, CreatedAt: invite.CreatedAt, UpdatedAt: invite.UpdatedAt,
			Event: names[i], From: froms[i], To: tos[i], Status: invite.Status,
		}
	}
	return views, nil
}

// FriendRequests converts friend requests for display. Both referenced
// fields resolve through one batched lookup: the from ids and to ids are
// concatenated into a single input, and each view reads its pair from the
// two aligned halves of the output.
func (r *Responses) FriendRequests(ctx context.Context, requests []friending.RequestDoc) ([]FriendRequestView, error) {
	ids := make([]string, 0, 2*len(requests))
	for _, request := range requests {
		ids = append(ids, request.From)
	}
	for _, request := range requests {
		ids = append(ids, request.To)
	}
	usernames, err := r.authing.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]FriendRequestView, len(requests))
	for i, request := range requests {
		views[i] = FriendRequestView{
			ID: request.ID, CreatedAt: request.CreatedAt, UpdatedAt: request.UpdatedAt,
			From: usernames[i], To: usernames[i+len(requests)], Status: request.Status,
		}
	}
	return views, nil
}

func eventView(event *events.EventDoc, author string) *EventView {
	return &EventView{
		ID: event.ID, CreatedAt: event.CreatedAt, UpdatedAt: event.UpdatedAt,
		Author: author, Name: event.Name, Time: event.Time,
		Location: event.Location, Price: event.Price, Description: event.Description,
		Choreographers: event.Choreographers, Genres: event.Genres,
		Props: event.Props, Attendees: event.Attendees,
	}
}
