package normalize

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownType indicates a type identifier or runtime type absent from the registry.
	ErrUnknownType = errors.New("unknown type")

	// ErrMalformedWire indicates a wire value whose shape does not match the model.
	ErrMalformedWire = errors.New("malformed wire value")

	// ErrDuplicateRegistration indicates conflicting registrations for one identifier.
	ErrDuplicateRegistration = errors.New("duplicate registration")

	// ErrIncompleteRegistry indicates a registered type nests a type that is not registered.
	ErrIncompleteRegistry = errors.New("incomplete registry")

	// ErrRegistrySealed indicates a registration attempt after a dispatcher was built.
	ErrRegistrySealed = errors.New("registry sealed")

	// ErrInvalidEntry indicates a registry entry or model declaration that cannot be used.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// TypeError reports a type that could not be dispatched.
type TypeError struct {
	Err    error  // Underlying sentinel error (ErrUnknownType)
	TypeID TypeID // Requested identifier, if any
	GoType string // Runtime type of the value being encoded, if any
}

func (e *TypeError) Error() string {
	if e.TypeID != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.TypeID)
	}
	if e.GoType != "" {
		return fmt.Sprintf("%s (go type %s)", e.Err.Error(), e.GoType)
	}
	return e.Err.Error()
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// WireError reports a wire value that does not fit the target shape.
type WireError struct {
	Err    error  // Underlying sentinel error (ErrMalformedWire)
	TypeID TypeID // Handler that was decoding, if known
	Path   string // Location inside the wire tree
	Want   string // Expected shape
	Got    string // Observed shape
}

func (e *WireError) Error() string {
	msg := e.Err.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.TypeID != "" {
		msg += fmt.Sprintf(" (%s)", e.TypeID)
	}
	if e.Want != "" {
		msg += fmt.Sprintf(": want %s, got %s", e.Want, e.Got)
	}
	return msg
}

func (e *WireError) Unwrap() error {
	return e.Err
}

// RegistrationError reports a registry configuration problem.
type RegistrationError struct {
	Err    error  // Underlying sentinel error
	TypeID TypeID // Identifier involved
	Detail string // Human readable detail
}

func (e *RegistrationError) Error() string {
	switch {
	case e.TypeID != "" && e.Detail != "":
		return fmt.Sprintf("%s %q: %s", e.Err.Error(), e.TypeID, e.Detail)
	case e.TypeID != "":
		return fmt.Sprintf("%s %q", e.Err.Error(), e.TypeID)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	ContentType string // Codec content type
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	msg := e.Err.Error()
	if e.ContentType != "" {
		msg += " (" + e.ContentType + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newUnknownTypeID(id TypeID) error {
	return &TypeError{Err: ErrUnknownType, TypeID: id}
}

func newUnknownGoType(v any) error {
	return &TypeError{Err: ErrUnknownType, GoType: fmt.Sprintf("%T", v)}
}

func newWireError(id TypeID, path, want string, got any) error {
	return &WireError{
		Err:    ErrMalformedWire,
		TypeID: id,
		Path:   path,
		Want:   want,
		Got:    wireKind(got),
	}
}

func newRegistrationError(sentinel error, id TypeID, detail string) error {
	return &RegistrationError{Err: sentinel, TypeID: id, Detail: detail}
}

func newCodecError(sentinel error, contentType string, cause error) error {
	return &CodecError{Err: sentinel, ContentType: contentType, Cause: cause}
}
