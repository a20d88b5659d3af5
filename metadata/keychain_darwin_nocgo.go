//go:build darwin && !cgo

package metadata

import "fmt"

func readKeychain(_, _ string) (string, bool, error) {
	return "", false, fmt.Errorf("keychain access requires CGO to be enabled on macOS")
}
