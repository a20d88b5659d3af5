package metadata

import "context"

// KeychainSource reads metadata from the macOS keychain. Entries are stored
// as generic passwords with the application ID as service and the metadata
// key as account.
type KeychainSource struct {
	service string
}

func NewKeychainSource(applicationID string) *KeychainSource {
	return &KeychainSource{service: applicationID}
}

func (s *KeychainSource) Lookup(_ context.Context, key string) (string, bool, error) {
	return readKeychain(s.service, key)
}
