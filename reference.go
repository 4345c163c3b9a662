package normalize

import "strings"

// Wire keys that mark a mapping as an indirection.
const (
	RefKey          = "$ref"
	RecursiveRefKey = "$recursiveRef"
)

// Reference is a placeholder for a value defined elsewhere.
// The token is never resolved here; callers that need the target resolve it
// against the document named by Origin.
type Reference struct {
	Token     string // Alias token, e.g. "#/definitions/Point"
	Origin    string // Document the token is relative to
	Recursive bool   // Token came from $recursiveRef
}

// DetectReference reports whether raw is an indirection mapping.
// $ref wins over $recursiveRef when both are present. A marker key whose
// token is not a string is ErrMalformedWire.
func DetectReference(raw any, origin string) (Reference, bool, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Reference{}, false, nil
	}

	if tok, present := m[RefKey]; present {
		s, ok := tok.(string)
		if !ok {
			return Reference{}, false, newWireError("", RefKey, "string token", tok)
		}
		return Reference{Token: s, Origin: origin}, true, nil
	}

	if tok, present := m[RecursiveRefKey]; present {
		s, ok := tok.(string)
		if !ok {
			return Reference{}, false, newWireError("", RecursiveRefKey, "string token", tok)
		}
		return Reference{Token: s, Origin: origin, Recursive: true}, true, nil
	}

	return Reference{}, false, nil
}

// Wire returns the mapping that re-encodes the reference.
func (r Reference) Wire() Map {
	if r.Recursive {
		return Map{RecursiveRefKey: r.Token}
	}
	return Map{RefKey: r.Token}
}

// Split separates the token into its document and fragment parts.
// "other.json#/defs/Point" yields ("other.json", "/defs/Point").
func (r Reference) Split() (document, fragment string) {
	document, fragment, _ = strings.Cut(r.Token, "#")
	return document, fragment
}

func (r Reference) String() string {
	if r.Origin == "" {
		return r.Token
	}
	return r.Origin + " " + r.Token
}

// Object is embedded by models so a typed slot can carry an unresolved
// Reference in place of inline data.
type Object struct {
	ref *Reference
}

// Reference returns the reference this object stands in for, if any.
func (o *Object) Reference() (Reference, bool) {
	if o.ref == nil {
		return Reference{}, false
	}
	return *o.ref, true
}

// SetReference turns the object into a stand-in for r.
func (o *Object) SetReference(r Reference) {
	o.ref = &r
}

// referrer is implemented by models embedding Object.
type referrer interface {
	Reference() (Reference, bool)
	SetReference(Reference)
}
