// Package metadata provides ConfigSource implementations standing in for the
// host's application packaging metadata.
package metadata

import (
	"context"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func SetLogger(l *logrus.Logger) {
	log = l
}

// StaticSource is an in-memory ConfigSource.
type StaticSource map[string]string

func (s StaticSource) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

// EnvName maps a metadata key to an environment variable name:
// "com.google.android.geo.API_KEY" becomes "COM_GOOGLE_ANDROID_GEO_API_KEY".
func EnvName(prefix, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
