package secret

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// debugPrefixLen bounds how much of a secret the debug log may show.
const debugPrefixLen = 6

// Handler looks up the maps API key in a ConfigSource.
type Handler struct {
	source      ConfigSource
	log         *logrus.Logger
	debugPrefix bool
}

var _ SecretProvider = (*Handler)(nil)

// NewHandler creates a handler reading from source. A nil logger discards
// diagnostics.
func NewHandler(source ConfigSource, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Handler{
		source: source,
		log:    log,
	}
}

// SetDebugSecretPrefix enables logging a short prefix of retrieved values at
// debug level. Off by default.
func (h *Handler) SetDebugSecretPrefix(enabled bool) {
	h.debugPrefix = enabled
}

// GetSecret returns the maps API key for the recognized request. Any other
// request yields ErrNotImplemented without consulting the source.
func (h *Handler) GetSecret(ctx context.Context, request string) (string, error) {
	if request != MethodGetGoogleMapsAPIKey {
		h.log.Debugf("No handler for request %q", request)
		return "", ErrNotImplemented
	}

	h.log.Debugf("%s called", request)

	value, found, err := h.source.Lookup(ctx, MetadataKeyMapsAPIKey)
	if err != nil {
		h.log.Errorf("Failed to get API key: %v", err)
		return "", &Error{
			Code:    CodeLookupFailed,
			Message: fmt.Sprintf("failed to get API key: %v", err),
			Err:     err,
		}
	}

	if !found || value == "" {
		h.log.Errorf("API key %s is missing or empty (found: %t)", MetadataKeyMapsAPIKey, found)
		return "", &Error{
			Code:    CodeNotFound,
			Message: "Google Maps API key not found or empty",
		}
	}

	h.log.Debugf("API key retrieved successfully (length: %d)", len(value))
	if h.debugPrefix {
		h.log.Debugf("API key (first %d chars): %s", debugPrefixLen, truncate(value, debugPrefixLen))
	}

	return value, nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
