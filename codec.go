package normalize

// Codec provides content-type aware marshaling of wire values.
//
// Unmarshal is called with a *any target and must leave a tree that
// Canonical accepts. Marshal receives a wire value.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
