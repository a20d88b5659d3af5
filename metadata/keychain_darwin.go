//go:build darwin && cgo

package metadata

import (
	"errors"
	"fmt"

	"github.com/keybase/go-keychain"
)

func readKeychain(service, account string) (string, bool, error) {
	query := keychain.NewItem()
	query.SetSecClass(keychain.SecClassGenericPassword)
	query.SetService(service)
	query.SetAccount(account)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if errors.Is(err, keychain.ErrorItemNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query keychain: %w", err)
	}

	if len(results) == 0 {
		log.Debugf("No keychain item for %s/%s", service, account)
		return "", false, nil
	}

	return string(results[0].Data), true, nil
}
