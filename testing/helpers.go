// Package testing provides fixtures shared by normalize tests.
package testing

import (
	"sync/atomic"
	stdtesting "testing"

	"github.com/zoobzio/normalize"
)

// Fixture type identifiers.
const (
	TypePoint   normalize.TypeID = "Point"
	TypeSegment normalize.TypeID = "Segment"
	TypePolygon normalize.TypeID = "Polygon"
)

// Point is a flat model.
type Point struct {
	normalize.Object

	X normalize.Field[float64] `wire:"x"`
	Y normalize.Field[float64] `wire:"y"`
}

// Segment nests two points.
type Segment struct {
	normalize.Object

	From  normalize.Field[*Point] `wire:"from"`
	To    normalize.Field[*Point] `wire:"to"`
	Label normalize.Field[string] `wire:"label"`
}

// Polygon nests a list of points and free-form metadata.
type Polygon struct {
	normalize.Object

	Vertices normalize.Field[[]Point]        `wire:"vertices"`
	Closed   normalize.Field[bool]           `wire:"closed"`
	Meta     normalize.Field[map[string]any] `wire:"meta"`
	Token    normalize.Field[string]         `wire:"token,secret"`
}

// Pt builds a Point with both coordinates set.
func Pt(x, y float64) *Point {
	return &Point{X: normalize.Some(x), Y: normalize.Some(y)}
}

// Counter records how many handlers a factory built.
type Counter struct {
	n atomic.Int64
}

// Count returns the number of factory calls.
func (c *Counter) Count() int64 {
	return c.n.Load()
}

// Counted wraps e so every factory call increments c.
func Counted(e normalize.Entry, c *Counter) normalize.Entry {
	factory := e.Factory
	if factory == nil {
		return e
	}
	e.Factory = func(d *normalize.Dispatcher) normalize.Handler {
		c.n.Add(1)
		return factory(d)
	}
	return e
}

// Entries returns the fixture registrations.
func Entries() []normalize.Entry {
	return []normalize.Entry{
		normalize.Model[Point](TypePoint),
		normalize.Model[Segment](TypeSegment),
		normalize.Model[Polygon](TypePolygon),
	}
}

// Registry returns a new registry holding the fixture models.
func Registry() *normalize.Registry {
	return normalize.NewRegistry().MustRegister(Entries()...)
}

// Dispatcher builds a dispatcher over a fresh fixture registry and fails
// the test on error.
func Dispatcher(tb stdtesting.TB, opts ...normalize.Option) *normalize.Dispatcher {
	tb.Helper()
	d, err := normalize.NewDispatcher(Registry(), opts...)
	if err != nil {
		tb.Fatalf("NewDispatcher() error: %v", err)
	}
	return d
}
