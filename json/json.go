// Package json provides a JSON codec implementation.
package json

import (
	"github.com/bytedance/sonic"

	"github.com/zoobzio/normalize"
)

// api keeps numbers as json.Number so integers and floats stay distinct,
// and sorts map keys so encoded bodies are stable.
var api = sonic.Config{
	UseNumber:   true,
	SortMapKeys: true,
	EscapeHTML:  true,
}.Froze()

// jsonCodec implements normalize.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() normalize.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
