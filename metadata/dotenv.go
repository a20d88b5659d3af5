package metadata

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
)

// DotenvSource reads metadata from a .env file. The file is re-read on every
// lookup.
type DotenvSource struct {
	path string
}

func NewDotenvSource(path string) *DotenvSource {
	return &DotenvSource{path: path}
}

// Lookup tries the key verbatim first, then its environment variable form.
func (s *DotenvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read dotenv file %s: %w", s.path, err)
	}

	if v, ok := values[key]; ok {
		log.Debugf("Dotenv %s: %s found=true", s.path, key)
		return v, true, nil
	}
	name := EnvName("", key)
	v, ok := values[name]
	log.Debugf("Dotenv %s: %s as %s found=%t", s.path, key, name, ok)
	return v, ok, nil
}
