package metadata

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
)

// placeholderPattern matches build-time manifest placeholders like
// ${GOOGLE_MAPS_API_KEY}.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

type manifest struct {
	XMLName     xml.Name            `xml:"manifest"`
	Package     string              `xml:"package,attr"`
	Application manifestApplication `xml:"application"`
}

type manifestApplication struct {
	MetaData []manifestMetaData `xml:"meta-data"`
}

type manifestMetaData struct {
	Name  string `xml:"http://schemas.android.com/apk/res/android name,attr"`
	Value string `xml:"http://schemas.android.com/apk/res/android value,attr"`
}

// ManifestSource reads <meta-data> entries declared on the <application>
// element of an AndroidManifest.xml.
type ManifestSource struct {
	path          string
	applicationID string
}

// NewManifestSource reads the manifest at path. When applicationID is set,
// the manifest must declare that package or every lookup fails.
func NewManifestSource(path, applicationID string) *ManifestSource {
	return &ManifestSource{
		path:          path,
		applicationID: applicationID,
	}
}

func (s *ManifestSource) Lookup(_ context.Context, key string) (string, bool, error) {
	m, err := s.load()
	if err != nil {
		return "", false, err
	}

	for _, md := range m.Application.MetaData {
		if md.Name != key {
			continue
		}
		value, ok := expandPlaceholders(md.Value)
		if !ok {
			log.Debugf("Retrieved from meta-data of %s: %s has unresolved placeholders", m.Package, key)
			return "", false, nil
		}
		log.Debugf("Retrieved from meta-data of %s: found (length: %d)", m.Package, len(value))
		return value, true, nil
	}

	log.Debugf("Retrieved from meta-data of %s: %s not declared", m.Package, key)
	return "", false, nil
}

// load resolves the application identity along with its metadata.
func (s *ManifestSource) load() (*manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", s.path, err)
	}

	if m.Package == "" && s.applicationID == "" {
		return nil, fmt.Errorf("manifest %s declares no package and no application ID is configured", s.path)
	}
	if s.applicationID != "" && m.Package != "" && m.Package != s.applicationID {
		return nil, fmt.Errorf("application %s not found: manifest %s declares package %s", s.applicationID, s.path, m.Package)
	}
	if m.Package == "" {
		m.Package = s.applicationID
	}
	return &m, nil
}

// expandPlaceholders substitutes ${NAME} placeholders from the environment.
// An unsubstituted manifest is not a usable value, so any unset variable
// reports ok == false.
func expandPlaceholders(v string) (string, bool) {
	ok := true
	out := placeholderPattern.ReplaceAllStringFunc(v, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		env, found := os.LookupEnv(name)
		if !found {
			ok = false
			return match
		}
		return env
	})
	return out, ok
}
