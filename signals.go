package normalize

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for dispatcher events.
var (
	SignalHandlerCreated = capitan.NewSignal("normalize.handler.created", "Handler instantiated")
	SignalDecodeStart    = capitan.NewSignal("normalize.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("normalize.decode.complete", "Decode operation finished")
	SignalEncodeStart    = capitan.NewSignal("normalize.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("normalize.encode.complete", "Encode operation finished")
	SignalFieldSkipped   = capitan.NewSignal("normalize.field.skipped", "Malformed field skipped in tolerant mode")
)

// Keys for typed event data.
var (
	KeyTypeID   = capitan.NewStringKey("type_id")
	KeyOrigin   = capitan.NewStringKey("origin")
	KeyPath     = capitan.NewStringKey("path")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitHandlerCreated emits an event when a handler is instantiated.
func emitHandlerCreated(ctx context.Context, id TypeID) {
	capitan.Emit(ctx, SignalHandlerCreated,
		KeyTypeID.Field(string(id)),
	)
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, id TypeID, origin string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyTypeID.Field(string(id)),
		KeyOrigin.Field(origin),
	)
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, id TypeID, origin string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeID.Field(string(id)),
		KeyOrigin.Field(origin),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, id TypeID) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyTypeID.Field(string(id)),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, id TypeID, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeID.Field(string(id)),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitFieldSkipped emits an event when tolerant mode drops a malformed field.
func emitFieldSkipped(ctx context.Context, id TypeID, path string, err error) {
	capitan.Error(ctx, SignalFieldSkipped,
		KeyTypeID.Field(string(id)),
		KeyPath.Field(path),
		KeyError.Field(err),
	)
}
