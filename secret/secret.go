package secret

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ChannelName is the call channel the application layer talks to.
	ChannelName = "com.example.hmapp_smartphone/google_maps_api_key"

	// MethodGetGoogleMapsAPIKey is the only request the handler answers.
	MethodGetGoogleMapsAPIKey = "getGoogleMapsApiKey"

	// MetadataKeyMapsAPIKey is the packaging metadata entry holding the key.
	MetadataKeyMapsAPIKey = "com.google.android.geo.API_KEY"
)

// SecretProvider answers a named secret request.
type SecretProvider interface {
	GetSecret(ctx context.Context, request string) (string, error)
}

// ConfigSource is a read-only key/value store owned by the host.
//
// A non-nil error means the store itself could not be consulted. A missing
// key is reported with found == false and a nil error.
type ConfigSource interface {
	Lookup(ctx context.Context, key string) (value string, found bool, err error)
}

// Code classifies a failed lookup.
type Code string

const (
	CodeLookupFailed Code = "LOOKUP_FAILED"
	CodeNotFound     Code = "NOT_FOUND"
)

// ErrNotImplemented is returned for requests no handler answers. It is not a
// failure of the lookup itself.
var ErrNotImplemented = errors.New("not implemented")

// Error is a typed lookup failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the failure code carried by err, or "" if it has none.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND failure.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsLookupFailed reports whether err is a LOOKUP_FAILED failure.
func IsLookupFailed(err error) bool {
	return CodeOf(err) == CodeLookupFailed
}
