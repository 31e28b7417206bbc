//go:build !darwin

package binary

// clearQuarantine is a no-op outside macOS.
func clearQuarantine(string) error {
	return nil
}
