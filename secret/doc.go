// Package secret answers the application's request for the maps API key.
//
// The Handler reads one fixed key from a ConfigSource and reports the
// outcome as a value, a typed *Error (LOOKUP_FAILED or NOT_FOUND), or
// ErrNotImplemented for requests it does not recognize.
package secret
