// Package mapping manages map viewports and event pins. It owns two
// collections: one for viewports and one for the pins placed on them.
package mapping

import (
	"context"
	"fmt"

	"github.com/stagecall/stagecall/internal/docstore"
	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// MapDoc is one map viewport with its current scroll offset.
type MapDoc struct {
	docstore.Base
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PinDoc is one pin placing an event on the map.
type PinDoc struct {
	docstore.Base
	Event string  `json:"event"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Concept owns the maps collection and its companion pins collection.
type Concept struct {
	maps *docstore.Collection[MapDoc]
	pins *docstore.Collection[PinDoc]
}

// New creates the mapping concept. Pins live in a sibling collection named
// after the map collection.
func New(db *docstore.DB, collection string) *Concept {
	return &Concept{
		maps: docstore.NewCollection[MapDoc](db, collection),
		pins: docstore.NewCollection[PinDoc](db, collection+"_pins"),
	}
}

// CreateMap creates a viewport at the origin and returns the freshly read
// record.
func (c *Concept) CreateMap(ctx context.Context) (string, *MapDoc, error) {
	id, err := c.maps.CreateOne(ctx, MapDoc{X: 0, Y: 0})
	if err != nil {
		return "", nil, fmt.Errorf("create map: %w", err)
	}
	m, err := c.maps.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read map: %w", err)
	}
	return "Map created successfully!", m, nil
}

// GetMap returns the viewport or a not-found error.
func (c *Concept) GetMap(ctx context.Context, id string) (*MapDoc, error) {
	m, err := c.maps.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if m == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeMapNotFound,
			"map not found", map[string]string{"Map": id})
	}
	return m, nil
}

// Scroll shifts the viewport by the given deltas. Scrolling an unknown map
// is a no-op.
func (c *Concept) Scroll(ctx context.Context, id string, dx, dy float64) (string, error) {
	m, err := c.maps.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", fmt.Errorf("read map: %w", err)
	}
	if m == nil {
		return "", nil
	}
	if err := c.maps.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Patch{
		"x": m.X + dx, "y": m.Y + dy,
	}); err != nil {
		return "", fmt.Errorf("update map: %w", err)
	}
	return "Successfully scrolled!", nil
}

// MakePin places an event pin at the given coordinates and returns the
// freshly read record.
func (c *Concept) MakePin(ctx context.Context, event string, x, y float64) (string, *PinDoc, error) {
	id, err := c.pins.CreateOne(ctx, PinDoc{Event: event, X: x, Y: y})
	if err != nil {
		return "", nil, fmt.Errorf("create pin: %w", err)
	}
	pin, err := c.pins.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", nil, fmt.Errorf("read pin: %w", err)
	}
	return "Pin created successfully!", pin, nil
}

// GetPinEventID resolves a pin to the event it marks.
func (c *Concept) GetPinEventID(ctx context.Context, id string) (string, error) {
	pin, err := c.pins.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return "", fmt.Errorf("read pin: %w", err)
	}
	if pin == nil {
		return "", apperrors.WithMetadata(apperrors.CodePinNotFound,
			"pin not found", map[string]string{"Pin": id})
	}
	return pin.Event, nil
}

// GetPins returns all pins, newest first.
func (c *Concept) GetPins(ctx context.Context) ([]PinDoc, error) {
	pins, err := c.pins.ReadMany(ctx, docstore.Filter{}, docstore.NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("read pins: %w", err)
	}
	return pins, nil
}
