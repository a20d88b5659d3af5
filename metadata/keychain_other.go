//go:build !darwin

package metadata

import "fmt"

func readKeychain(_, _ string) (string, bool, error) {
	return "", false, fmt.Errorf("keychain is only available on macOS")
}
