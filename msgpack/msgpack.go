// Package msgpack provides a MessagePack codec implementation.
//
// Decoded trees need normalize.Canonical before dispatch. Integers decode as
// the smallest kind that holds them (int8, uint16 and so on) and Canonical
// widens them to int64, rejecting uint64 values above math.MaxInt64. Binary
// payloads become strings. Timestamps travel as RFC 3339 strings because
// encode produces them that way; a msgpack timestamp extension decodes to
// time.Time, which Canonical rejects as malformed wire.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/normalize"
)

// msgpackCodec implements normalize.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() normalize.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
