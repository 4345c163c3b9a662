package normalize_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/capitan"
	captest "github.com/zoobzio/capitan/testing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zoobzio/normalize"
	"github.com/zoobzio/normalize/json"
	normtest "github.com/zoobzio/normalize/testing"
)

func TestDispatcher_HandlerCached(t *testing.T) {
	var c normtest.Counter
	reg := normalize.NewRegistry().MustRegister(
		normtest.Counted(normalize.Model[normtest.Point](normtest.TypePoint), &c),
	)
	d, err := normalize.NewDispatcher(reg)
	require.NoError(t, err)

	assert.Zero(t, c.Count(), "handlers are built lazily")

	h1, err := d.Handler(normtest.TypePoint)
	require.NoError(t, err)
	h2, err := d.Handler(normtest.TypePoint)
	require.NoError(t, err)

	assert.Same(t, h1, h2)
	assert.Equal(t, int64(1), c.Count())
	assert.Equal(t, normtest.TypePoint, h1.TypeID())
	assert.True(t, h1.SupportsType(normtest.TypePoint))
	assert.False(t, h1.SupportsType(normtest.TypeSegment))
}

func TestDispatcher_HandlerConcurrent(t *testing.T) {
	var c normtest.Counter
	reg := normalize.NewRegistry().MustRegister(
		normtest.Counted(normalize.Model[normtest.Point](normtest.TypePoint), &c),
		normalize.Model[normtest.Segment](normtest.TypeSegment),
		normalize.Model[normtest.Polygon](normtest.TypePolygon),
	)
	d, err := normalize.NewDispatcher(reg)
	require.NoError(t, err)

	const workers = 64
	handlers := make([]normalize.Handler, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			h, err := d.Handler(normtest.TypePoint)
			if err == nil {
				handlers[i] = h
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), c.Count())
	for i := 1; i < workers; i++ {
		assert.Same(t, handlers[0], handlers[i])
	}
}

func TestDispatcher_ConcurrentDecode(t *testing.T) {
	d := normtest.Dispatcher(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := map[string]any{
				"from":  map[string]any{"x": float64(i), "y": 0.0},
				"to":    map[string]any{"$ref": "#/far"},
				"label": "s",
			}
			v, err := d.Decode(ctx, normtest.TypeSegment, raw)
			if err != nil {
				errs <- err
				return
			}
			if v.(*normtest.Segment).From.Value().X.Value() != float64(i) {
				errs <- errors.Newf("worker %d decoded the wrong value", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestDispatcher_UnknownType(t *testing.T) {
	d := normtest.Dispatcher(t)
	ctx := context.Background()

	_, err := d.Handler("Missing")
	assert.True(t, errors.Is(err, normalize.ErrUnknownType))

	_, err = d.Decode(ctx, "Missing", map[string]any{})
	assert.True(t, errors.Is(err, normalize.ErrUnknownType))

	// The type is checked before the raw tree is inspected.
	_, err = d.Decode(ctx, "Missing", make(chan int))
	assert.True(t, errors.Is(err, normalize.ErrUnknownType))
	assert.False(t, errors.Is(err, normalize.ErrMalformedWire))

	_, err = d.Encode(ctx, struct{ X int }{1})
	assert.True(t, errors.Is(err, normalize.ErrUnknownType))

	_, _, err = normalize.DecodeAs[orphan](ctx, d, map[string]any{})
	assert.True(t, errors.Is(err, normalize.ErrUnknownType))

	assert.True(t, d.CanDecode(normtest.TypePoint))
	assert.False(t, d.CanDecode("Missing"))
	assert.True(t, d.CanEncode(normtest.Pt(1, 1)))
	assert.True(t, d.CanEncode(normalize.Reference{Token: "#"}))
	assert.False(t, d.CanEncode(42))
}

func TestDispatcher_NilFactoryResult(t *testing.T) {
	e := normalize.Model[normtest.Point](normtest.TypePoint)
	e.Factory = func(*normalize.Dispatcher) normalize.Handler { return nil }

	d, err := normalize.NewDispatcher(normalize.NewRegistry().MustRegister(e))
	require.NoError(t, err)

	_, err = d.Handler(normtest.TypePoint)
	assert.True(t, errors.Is(err, normalize.ErrInvalidEntry))

	// The failure is cached like a handler.
	_, err = d.Decode(context.Background(), normtest.TypePoint, nil)
	assert.True(t, errors.Is(err, normalize.ErrInvalidEntry))
}

func TestDispatcher_PanickingFactory(t *testing.T) {
	e := normalize.Model[normtest.Point](normtest.TypePoint)
	e.Factory = func(*normalize.Dispatcher) normalize.Handler { panic("factory failed") }

	d, err := normalize.NewDispatcher(normalize.NewRegistry().MustRegister(e))
	require.NoError(t, err)

	assert.Panics(t, func() { _, _ = d.Handler(normtest.TypePoint) })

	h, err := d.Handler(normtest.TypePoint)
	assert.Nil(t, h)
	assert.True(t, errors.Is(err, normalize.ErrInvalidEntry))

	_, err = d.Decode(context.Background(), normtest.TypePoint, map[string]any{"x": 1.0})
	assert.True(t, errors.Is(err, normalize.ErrInvalidEntry))
}

func TestDispatcher_Func(t *testing.T) {
	type celsius float64

	reg := normalize.NewRegistry().MustRegister(normalize.Func[celsius]("Celsius",
		func(s *normalize.Scope, raw any) (celsius, error) {
			f, ok := raw.(float64)
			if !ok {
				return 0, s.Malformed("number", raw)
			}
			return celsius(f), nil
		},
		func(_ *normalize.Scope, v celsius) (any, error) {
			return float64(v), nil
		},
	))
	d, err := normalize.NewDispatcher(reg)
	require.NoError(t, err)
	ctx := context.Background()

	v, err := d.Decode(ctx, "Celsius", float32(21.5))
	require.NoError(t, err)
	assert.Equal(t, celsius(21.5), v)

	ref, err := d.Decode(ctx, "Celsius", map[string]any{"$ref": "#/room"})
	require.NoError(t, err)
	assert.Equal(t, normalize.Reference{Token: "#/room"}, ref)

	_, err = d.Decode(ctx, "Celsius", "warm")
	assert.True(t, errors.Is(err, normalize.ErrMalformedWire))

	out, err := d.Encode(ctx, celsius(-3))
	require.NoError(t, err)
	assert.Equal(t, -3.0, out)
}

func TestDispatcher_Codec(t *testing.T) {
	d := normtest.Dispatcher(t)
	ctx := context.Background()
	c := json.New()

	data, err := d.Marshal(ctx, c, normtest.Pt(1, 2.5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 1, "y": 2.5}`, string(data))

	v, err := d.Unmarshal(ctx, c, normtest.TypePoint, data)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v.(*normtest.Point).Y.Value())

	_, err = d.Unmarshal(ctx, c, normtest.TypePoint, []byte("{"))
	assert.True(t, errors.Is(err, normalize.ErrUnmarshal))

	var ce *normalize.CodecError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "application/json", ce.ContentType)
}

func TestDispatcher_DefaultOrigin(t *testing.T) {
	d := normtest.Dispatcher(t, normalize.WithDefaultOrigin("base.yaml"))
	ctx := context.Background()
	raw := map[string]any{"$ref": "#/p"}

	_, ref, err := normalize.DecodeAs[normtest.Point](ctx, d, raw)
	require.NoError(t, err)
	assert.Equal(t, "base.yaml", ref.Origin)

	_, ref, err = normalize.DecodeAs[normtest.Point](ctx, d, raw, normalize.WithOrigin("other.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", ref.Origin)
}

func TestDispatcher_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := normtest.Dispatcher(t, normalize.WithLogger(zap.New(core)), normalize.WithTolerant(true))

	_, err := d.Decode(context.Background(), normtest.TypeSegment, map[string]any{
		"from":  map[string]any{"x": "left"},
		"label": "ok",
	})
	require.NoError(t, err)

	created := logs.FilterMessage("handler created").All()
	assert.Len(t, created, 2, "Segment and Point")

	skipped := logs.FilterMessage("skipping malformed field").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.WarnLevel, skipped[0].Level)
	assert.Equal(t, "from.x", skipped[0].ContextMap()["path"])
	assert.Equal(t, string(normtest.TypePoint), skipped[0].ContextMap()["type_id"])
}

func TestDispatcher_Signals(t *testing.T) {
	created := captest.NewEventCapture()
	createdL := capitan.Hook(normalize.SignalHandlerCreated, created.Handler())
	defer createdL.Close()
	skipped := captest.NewEventCapture()
	skippedL := capitan.Hook(normalize.SignalFieldSkipped, skipped.Handler())
	defer skippedL.Close()

	d := normtest.Dispatcher(t, normalize.WithTolerant(true))
	_, err := d.Decode(context.Background(), normtest.TypeSegment, map[string]any{
		"from":  map[string]any{"x": "left"},
		"label": "ok",
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, createdL.Drain(ctx))
	require.NoError(t, skippedL.Drain(ctx))

	var ids []string
	for _, e := range created.Events() {
		ids = append(ids, normalize.KeyTypeID.ExtractFromFields(e.Fields))
	}
	assert.Contains(t, ids, string(normtest.TypeSegment))
	assert.Contains(t, ids, string(normtest.TypePoint))

	var paths []string
	for _, e := range skipped.Events() {
		assert.Equal(t, capitan.SeverityError, e.Severity)
		if normalize.KeyTypeID.ExtractFromFields(e.Fields) == string(normtest.TypePoint) {
			paths = append(paths, normalize.KeyPath.ExtractFromFields(e.Fields))
		}
	}
	assert.Contains(t, paths, "from.x")
}

func TestDispatcher_Metrics(t *testing.T) {
	m := normalize.NewMetrics("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	d := normtest.Dispatcher(t, normalize.WithMetrics(m))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := d.Decode(ctx, normtest.TypePoint, map[string]any{"x": 1.0})
		require.NoError(t, err)
	}
	_, err := d.Decode(ctx, normtest.TypePoint, map[string]any{"x": "bad"})
	require.Error(t, err)
	_, err = d.Encode(ctx, normtest.Pt(0, 0))
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Operations.WithLabelValues("decode", "Point", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("decode", "Point", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("encode", "Point", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandlersCreated.WithLabelValues("Point")))

	n, err := testutil.GatherAndCount(reg, "test_normalize_duration_microseconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_MustRegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	normalize.NewMetrics("dup").MustRegister(reg)

	assert.Panics(t, func() {
		normalize.NewMetrics("dup").MustRegister(reg)
	})
	assert.Error(t, normalize.NewMetrics("dup").Register(reg))
}
