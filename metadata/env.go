package metadata

import (
	"context"
	"os"
)

// EnvSource reads metadata from the process environment.
type EnvSource struct {
	// prefix is prepended to every variable name (e.g. "MAPSKEY_").
	prefix string
}

func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{prefix: prefix}
}

func (s *EnvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	name := EnvName(s.prefix, key)
	v, ok := os.LookupEnv(name)
	log.Debugf("Environment %s: found=%t", name, ok)
	return v, ok, nil
}
