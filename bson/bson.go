// Package bson provides a BSON codec implementation.
package bson

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoobzio/normalize"
)

// bsonCodec implements normalize.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() normalize.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON. The top-level value must be a document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. A *any target receives a wire tree
// built from plain maps and slices instead of bson.D and primitive.A.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	tree, ok := v.(*any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*tree = fromBSON(doc)
	return nil
}

// fromBSON converts driver container types into wire containers.
func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = fromBSON(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, elem := range t {
			m[k] = fromBSON(elem)
		}
		return m
	case bson.A:
		l := make([]any, len(t))
		for i, elem := range t {
			l[i] = fromBSON(elem)
		}
		return l
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return v
}
