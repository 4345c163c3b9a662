package normalize

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher routes decode and encode calls to the handler registered for a
// type, building each handler at most once.
//
// Dispatchers are safe for concurrent use. Cache hits take no locks.
type Dispatcher struct {
	registry *Registry
	handlers map[TypeID]*handlerCell // fixed at construction, read-only afterwards

	logger   *zap.Logger
	metrics  *Metrics
	tolerant bool
	origin   string
}

// handlerCell lazily holds one handler instance.
type handlerCell struct {
	entry Entry
	once  sync.Once
	h     Handler
	err   error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics records operation counts and latencies into m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTolerant switches malformed field handling from fail-fast to
// skip-and-continue. Skipped fields are left unset and reported through the
// logger and SignalFieldSkipped.
func WithTolerant(tolerant bool) Option {
	return func(d *Dispatcher) {
		d.tolerant = tolerant
	}
}

// WithDefaultOrigin sets the origin used for references when a decode call
// does not supply one.
func WithDefaultOrigin(origin string) Option {
	return func(d *Dispatcher) {
		d.origin = origin
	}
}

// CallOption configures a single Decode or Encode call.
type CallOption func(*callOptions)

type callOptions struct {
	origin    string
	originSet bool
	masker    Masker
}

// WithOrigin names the document that references in this call are relative to.
func WithOrigin(origin string) CallOption {
	return func(o *callOptions) {
		o.origin = origin
		o.originSet = true
	}
}

// WithRedaction replaces initialized secret fields with mask when encoding.
func WithRedaction(mask string) CallOption {
	return WithMasker(FixedMasker(mask))
}

// WithMasker rewrites initialized secret fields through m when encoding.
func WithMasker(m Masker) CallOption {
	return func(o *callOptions) {
		o.masker = m
	}
}

// NewDispatcher seals reg and builds a dispatcher over it. The registry must
// be closed under nesting.
func NewDispatcher(reg *Registry, opts ...Option) (*Dispatcher, error) {
	if reg == nil {
		return nil, newRegistrationError(ErrInvalidEntry, "", "nil registry")
	}

	reg.seal()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		registry: reg,
		handlers: make(map[TypeID]*handlerCell, reg.Len()),
		logger:   zap.NewNop(),
	}
	for _, id := range reg.IDs() {
		e, _ := reg.Lookup(id)
		d.handlers[id] = &handlerCell{entry: e}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Registry returns the registry the dispatcher was built on.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// CanDecode reports whether id is registered.
func (d *Dispatcher) CanDecode(id TypeID) bool {
	_, ok := d.handlers[id]
	return ok
}

// CanEncode reports whether v's runtime type is registered.
func (d *Dispatcher) CanEncode(v any) bool {
	switch v.(type) {
	case Reference, *Reference:
		return true
	}
	_, ok := d.registry.TypeOf(reflect.TypeOf(v))
	return ok
}

// Handler returns the handler for id, building it on first use. Repeated
// calls return the same instance.
func (d *Dispatcher) Handler(id TypeID) (Handler, error) {
	cell, ok := d.handlers[id]
	if !ok {
		return nil, newUnknownTypeID(id)
	}
	cell.once.Do(func() {
		cell.h = cell.entry.Factory(d)
		if cell.h == nil {
			cell.err = newRegistrationError(ErrInvalidEntry, id, "factory returned nil handler")
			return
		}
		d.logger.Debug("handler created", zap.String("type_id", string(id)))
		d.metrics.handlerCreated(id)
		emitHandlerCreated(context.Background(), id)
	})
	// A factory that panicked completes the once without storing anything.
	if cell.h == nil && cell.err == nil {
		return nil, newRegistrationError(ErrInvalidEntry, id, "handler factory did not complete")
	}
	return cell.h, cell.err
}

// Decode converts raw into a model of type id. The result is a pointer to the
// model, or a Reference when raw is an indirection.
func (d *Dispatcher) Decode(ctx context.Context, id TypeID, raw any, opts ...CallOption) (any, error) {
	s := d.newScope(ctx, opts)

	start := time.Now()
	emitDecodeStart(ctx, id, s.origin)

	var retErr error
	defer func() {
		elapsed := time.Since(start)
		d.metrics.observe(opDecode, id, elapsed, retErr)
		emitDecodeComplete(ctx, id, s.origin, elapsed, retErr)
	}()

	if _, ok := d.handlers[id]; !ok {
		retErr = newUnknownTypeID(id)
		return nil, retErr
	}

	tree, err := Canonical(raw)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	v, err := d.decodeIn(s, id, tree)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	return v, nil
}

// Encode converts a model into a wire value using the handler registered
// for its runtime type.
func (d *Dispatcher) Encode(ctx context.Context, v any, opts ...CallOption) (any, error) {
	s := d.newScope(ctx, opts)
	id, _ := d.registry.TypeOf(reflect.TypeOf(v))

	start := time.Now()
	emitEncodeStart(ctx, id)

	var retErr error
	defer func() {
		elapsed := time.Since(start)
		d.metrics.observe(opEncode, id, elapsed, retErr)
		emitEncodeComplete(ctx, id, elapsed, retErr)
	}()

	out, err := d.encodeIn(s, v)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	return out, nil
}

// Unmarshal decodes data with c and converts the result into type id.
func (d *Dispatcher) Unmarshal(ctx context.Context, c Codec, id TypeID, data []byte, opts ...CallOption) (any, error) {
	var tree any
	if err := c.Unmarshal(data, &tree); err != nil {
		return nil, newCodecError(ErrUnmarshal, c.ContentType(), err)
	}
	return d.Decode(ctx, id, tree, opts...)
}

// Marshal encodes v and serializes the wire value with c.
func (d *Dispatcher) Marshal(ctx context.Context, c Codec, v any, opts ...CallOption) ([]byte, error) {
	tree, err := d.Encode(ctx, v, opts...)
	if err != nil {
		return nil, err
	}
	data, err := c.Marshal(tree)
	if err != nil {
		return nil, newCodecError(ErrMarshal, c.ContentType(), err)
	}
	return data, nil
}

// DecodeAs decodes raw as the type registered for T. Exactly one of the
// model and the reference is non-nil on success.
func DecodeAs[T any](ctx context.Context, d *Dispatcher, raw any, opts ...CallOption) (*T, *Reference, error) {
	id, ok := d.registry.TypeOf(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return nil, nil, newUnknownGoType(zero)
	}

	v, err := d.Decode(ctx, id, raw, opts...)
	if err != nil {
		return nil, nil, err
	}

	switch t := v.(type) {
	case *T:
		return t, nil, nil
	case T:
		return &t, nil, nil
	case Reference:
		return nil, &t, nil
	}
	return nil, nil, newUnknownGoType(v)
}

func (d *Dispatcher) newScope(ctx context.Context, opts []CallOption) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	origin := d.origin
	if o.originSet {
		origin = o.origin
	}
	return &Scope{
		ctx:    ctx,
		d:      d,
		origin: origin,
		masker: o.masker,
	}
}

func (d *Dispatcher) decodeIn(s *Scope, id TypeID, raw any) (any, error) {
	h, err := d.Handler(id)
	if err != nil {
		return nil, err
	}
	if !h.SupportsType(id) {
		return nil, newRegistrationError(ErrInvalidEntry, id, "handler does not support its own type")
	}

	child := *s
	child.typeID = id
	return h.FromWire(&child, raw)
}

func (d *Dispatcher) encodeIn(s *Scope, v any) (any, error) {
	switch t := v.(type) {
	case Reference:
		return t.Wire(), nil
	case *Reference:
		if t == nil {
			return nil, nil
		}
		return t.Wire(), nil
	}

	id, ok := d.registry.TypeOf(reflect.TypeOf(v))
	if !ok {
		return nil, newUnknownGoType(v)
	}
	h, err := d.Handler(id)
	if err != nil {
		return nil, err
	}
	if !h.SupportsValue(v) {
		return nil, newUnknownGoType(v)
	}

	child := *s
	child.typeID = id
	return h.ToWire(&child, v)
}

func (d *Dispatcher) skipped(s *Scope, err error) {
	d.logger.Warn("skipping malformed field",
		zap.String("type_id", string(s.typeID)),
		zap.String("path", s.path),
		zap.Error(err),
	)
	emitFieldSkipped(s.ctx, s.typeID, s.path, err)
}
