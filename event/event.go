// Package event packages index entries as named events carrying serialized
// markup payloads, and queues them between producers and consumers.
//
// A producer builds a small index, serializes one container from it and
// pushes the result:
//
//	e, err := event.Transform("Head_Move", matrix)
//	q.Push(e)
//
// A consumer decodes the payload back into an index:
//
//	idx, err := e.Index()
//	xf, err := index.ValueOf[[]float64](idx, "Transform", e.Name)
package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/markup"
	"github.com/ardnew/dataindex/pkg"
)

// TransformName is the entry holding a 4x4 row-major transform in events
// built by [Transform].
const TransformName = "Transform"

// ErrEmptyName is returned when an event is built without a name.
var ErrEmptyName = pkg.NewError("empty event name")

// Event is a named markup payload.
type Event struct {
	ID      uuid.UUID
	Name    string
	Payload string
}

// FromIndex returns an event named name whose payload is the serialized
// entry /name of idx.
func FromIndex(idx *index.Index, name string) (Event, error) {
	base := index.Base(name)
	if base == "" {
		return Event{}, ErrEmptyName
	}

	payload, err := idx.Serialize(index.Canonical(name))
	if err != nil {
		return Event{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Event{}, err
	}

	return Event{ID: id, Name: base, Payload: payload}, nil
}

// Transform returns an event named name carrying a single
// <Transform type="vecfloat"> entry with the 16 elements of m.
func Transform(name string, m [16]float64) (Event, error) {
	idx := index.New(index.WithCacheSize(0))

	if _, err := idx.AddVecFloat(index.Canonical(name)+"/"+TransformName, m[:]...); err != nil {
		return Event{}, err
	}

	return FromIndex(idx, name)
}

// Index decodes the payload into a new index built with opts. The event's
// entries appear under /Name. Payloads are parsed without the shared parse
// cache unless opts select a parser.
func (e Event) Index(opts ...index.Option) (*index.Index, error) {
	idx := index.New(append([]index.Option{index.WithParser(markup.Parse)}, opts...)...)

	if err := idx.IngestMarkup(context.Background(), e.Payload); err != nil {
		return nil, err
	}

	return idx, nil
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", e.ID.String()),
		slog.String("name", e.Name),
		slog.Int("payload_bytes", len(e.Payload)),
	)
}
