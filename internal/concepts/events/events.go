// Package events manages event records and their tag-like string sets.
package events

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// DeletedEventPlaceholder stands in for events that no longer resolve when
// translating ids to names in bulk.
const DeletedEventPlaceholder = "DELETED_EVENT"

// EventDoc is one event record. The four list fields are sets: values are
// unique and unordered beyond insertion order.
type EventDoc struct {
	docstore.Base
	Author         string   `json:"author"`
	Name           string   `json:"name"`
	Time           string   `json:"time"`
	Location       string   `json:"location"`
	Price          float64  `json:"price"`
	Description    string   `json:"description"`
	Choreographers []string `json:"choreographers"`
	Genres         []string `json:"genres"`
	Props          []string `json:"props"`
	Attendees      []string `json:"attendees"`
}

// EventPatch holds optional replacement values for an event's canonical
// fields. Nil fields are left untouched.
type EventPatch struct {
	Name        *string
	Time        *string
	Location    *string
	Price       *float64
	Description *string
}

// Concept owns the events collection.
type Concept struct {
	events *docstore.Collection[EventDoc]
}

// New creates the events concept over the named collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{events: docstore.NewCollection[EventDoc](db, collection)}
}

// CreateEvent creates an event with empty list fields and returns the
// freshly read record.
func (c *Concept) CreateEvent(ctx context.Context, author, name, eventTime, location string, price float64, description string) (string, *EventDoc, error) {
	if strings.TrimSpace(author) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "author is required")
	}
	if strings.TrimSpace(name) == "" {
		return "", nil, apperrors.New(apperrors.CodeBadValues, "name is required")
	}

	id, err := c.events.CreateOne(ctx, EventDoc{
		Author:         author,
		Name:           name,
		Time:           eventTime,
		Location:       location,
		Price:          price,
		Description:    description,
		Choreographers: []string{},
		Genres:         []string{},
		Props:          []string{},
		Attendees:      []string{},
	})
	if err != nil {
		return "", nil, fmt.Errorf("create event: %w", err)
	}

	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read event: %w", err)
	}
	return "Event created successfully!", event, nil
}

// DeleteEvent removes the event. Deleting an unknown id is a no-op.
func (c *Concept) DeleteEvent(ctx context.Context, id string) (string, error) {
	if err := c.events.DeleteOne(ctx, docstore.Filter{"id": id}); err != nil {
		return "", fmt.Errorf("delete event: %w", err)
	}
	return "Event deleted successfully!", nil
}

// GetEvents returns all events, newest first.
func (c *Concept) GetEvents(ctx context.Context) ([]EventDoc, error) {
	events, err := c.events.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// GetByAuthor returns the author's events, newest first.
func (c *Concept) GetByAuthor(ctx context.Context, author string) ([]EventDoc, error) {
	events, err := c.events.ReadMany(ctx, docstore.Filter{"author": author}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read events by author: %w", err)
	}
	return events, nil
}

// GetByID returns the event or a not-found error.
func (c *Concept) GetByID(ctx context.Context, id string) (*EventDoc, error) {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("read event: %w", err)
	}
	if event == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeEventNotFound,
			"event not found", map[string]string{"Event": id})
	}
	return event, nil
}

// GetIDByName resolves an event name to its id.
func (c *Concept) GetIDByName(ctx context.Context, name string) (string, error) {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"name": name})
	if err != nil {
		return "", fmt.Errorf("read event by name: %w", err)
	}
	if event == nil {
		return "", apperrors.WithMetadata(apperrors.CodeEventNotFound,
			"event not found", map[string]string{"Event": name})
	}
	return event.ID, nil
}

// IDsToNames resolves event ids to names with one batched read. The result
// is aligned 1:1 with the input; unresolved ids map to a placeholder.
func (c *Concept) IDsToNames(ctx context.Context, ids []string) ([]string, error) {
	events, err := c.events.ReadMany(ctx, docstore.Filter{"id": docstore.In(ids...)})
	if err != nil {
		return nil, fmt.Errorf("read events by ids: %w", err)
	}

	byID := make(map[string]string, len(events))
	for _, event := range events {
		byID[event.ID] = event.Name
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		name, ok := byID[id]
		if !ok {
			name = DeletedEventPlaceholder
		}
		names[i] = name
	}
	return names, nil
}

// UpdateEvent applies the non-nil patch fields to the event.
func (c *Concept) UpdateEvent(ctx context.Context, id string, patch EventPatch) (string, error) {
	update := docstore.Patch{}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.Time != nil {
		update["time"] = *patch.Time
	}
	if patch.Location != nil {
		update["location"] = *patch.Location
	}
	if patch.Price != nil {
		update["price"] = *patch.Price
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}

	if err := c.events.PartialUpdateOne(ctx, docstore.Filter{"id": id}, update); err != nil {
		return "", fmt.Errorf("update event: %w", err)
	}
	return "Event successfully updated!", nil
}

// AddChoreographer adds a choreographer to the event's set. Adding a value
// already present is a no-op that still reports success.
func (c *Concept) AddChoreographer(ctx context.Context, id, choreographer string) (string, error) {
	if err := c.addToList(ctx, id, "choreographers", choreographer); err != nil {
		return "", err
	}
	return "Event choreog successfully added!", nil
}

// DeleteChoreographer removes a choreographer from the event's set. The
// returned message distinguishes removal from the value not being present.
func (c *Concept) DeleteChoreographer(ctx context.Context, id, choreographer string) (string, error) {
	removed, err := c.deleteFromList(ctx, id, "choreographers", choreographer)
	if err != nil {
		return "", err
	}
	if !removed {
		return "Choreographer not in choreographers list!", nil
	}
	return "Event choreog successfully deleted!", nil
}

// AddGenre adds a genre to the event's set.
func (c *Concept) AddGenre(ctx context.Context, id, genre string) (string, error) {
	if err := c.addToList(ctx, id, "genres", genre); err != nil {
		return "", err
	}
	return "Event genre successfully added!", nil
}

// DeleteGenre removes a genre from the event's set.
func (c *Concept) DeleteGenre(ctx context.Context, id, genre string) (string, error) {
	removed, err := c.deleteFromList(ctx, id, "genres", genre)
	if err != nil {
		return "", err
	}
	if !removed {
		return "Genre not in genres list!", nil
	}
	return "Event genre successfully deleted!", nil
}

// AddProp adds a prop to the event's set.
func (c *Concept) AddProp(ctx context.Context, id, prop string) (string, error) {
	if err := c.addToList(ctx, id, "props", prop); err != nil {
		return "", err
	}
	return "Event prop successfully added!", nil
}

// DeleteProp removes a prop from the event's set.
func (c *Concept) DeleteProp(ctx context.Context, id, prop string) (string, error) {
	removed, err := c.deleteFromList(ctx, id, "props", prop)
	if err != nil {
		return "", err
	}
	if !removed {
		return "Prop not in props list!", nil
	}
	return "Event prop successfully deleted!", nil
}

// AddAttendee adds an attendee to the event's set.
func (c *Concept) AddAttendee(ctx context.Context, id, attendee string) (string, error) {
	if err := c.addToList(ctx, id, "attendees", attendee); err != nil {
		return "", err
	}
	return "Event attendee successfully added!", nil
}

// DeleteAttendee removes an attendee from the event's set.
func (c *Concept) DeleteAttendee(ctx context.Context, id, attendee string) (string, error) {
	removed, err := c.deleteFromList(ctx, id, "attendees", attendee)
	if err != nil {
		return "", err
	}
	if !removed {
		return "Attendee not in attendee list!", nil
	}
	return "Event attendee successfully deleted!", nil
}

// AssertAuthorIsUser fails when the event does not exist or its author is
// not the given user. Existence is checked first so a missing event never
// reports an authorship problem.
func (c *Concept) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read event: %w", err)
	}
	if event == nil {
		return apperrors.WithMetadata(apperrors.CodeEventNotFound,
			fmt.Sprintf("event %s does not exist", id), map[string]string{"Event": id})
	}
	if event.Author != user {
		return apperrors.WithMetadata(apperrors.CodeEventAuthorMismatch,
			fmt.Sprintf("%s is not the author of event %s", user, id),
			map[string]string{"User": user, "Event": id})
	}
	return nil
}

// AssertUserNotAttendee fails when the event does not exist or the user is
// already in its attendee set.
func (c *Concept) AssertUserNotAttendee(ctx context.Context, id, user string) error {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read event: %w", err)
	}
	if event == nil {
		return apperrors.WithMetadata(apperrors.CodeEventNotFound,
			fmt.Sprintf("event %s does not exist", id), map[string]string{"Event": id})
	}
	if slices.Contains(event.Attendees, user) {
		return apperrors.WithMetadata(apperrors.CodeEventAlreadyAttendee,
			fmt.Sprintf("%s is already attending event %s", user, id),
			map[string]string{"User": user, "Event": id})
	}
	return nil
}

func (c *Concept) addToList(ctx context.Context, id, field, value string) error {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("read event: %w", err)
	}
	if event == nil {
		return nil
	}

	list := listField(event, field)
	if slices.Contains(list, value) {
		return nil
	}
	list = append(list, value)
	if err := c.events.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{field: list}); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	return nil
}

func (c *Concept) deleteFromList(ctx context.Context, id, field, value string) (bool, error) {
	event, err := c.events.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return false, fmt.Errorf("read event: %w", err)
	}
	if event == nil {
		return false, nil
	}

	list := listField(event, field)
	index := slices.Index(list, value)
	if index < 0 {
		return false, nil
	}
	list = slices.Delete(list, index, index+1)
	if err := c.events.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{field: list}); err != nil {
		return false, fmt.Errorf("update %s: %w", field, err)
	}
	return true, nil
}

func listField(event *EventDoc, field string) []string {
	switch field {
	case "choreographers":
		return event.Choreographers
	case "genres":
		return event.Genres
	case "props":
		return event.Props
	case "attendees":
		return event.Attendees
	}
	return nil
}
