package metadata

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// metadataFile is the on-disk layout read by FileSource:
//
//	metadata:
//	  com.google.android.geo.API_KEY: AIza...
type metadataFile struct {
	Metadata map[string]string `yaml:"metadata"`
}

// FileSource reads metadata from a YAML file. Keys are case-sensitive.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Lookup(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var f metadataFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", false, fmt.Errorf("failed to parse metadata file %s: %w", s.path, err)
	}

	v, ok := f.Metadata[key]
	log.Debugf("Metadata file %s: %s found=%t", s.path, key, ok)
	return v, ok, nil
}
