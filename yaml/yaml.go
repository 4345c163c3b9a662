// Package yaml provides a YAML codec implementation.
//
// Decoded trees need normalize.Canonical before dispatch. Integers come back
// as int (int64 or uint64 when they do not fit) and are widened to int64
// there. Plain scalars that look like timestamps stay strings, which the
// RFC 3339 Time handler accepts; an explicit !!timestamp tag yields a
// time.Time that Canonical rejects as malformed wire.
package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/normalize"
)

// yamlCodec implements normalize.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() normalize.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
