//go:build !linux && !darwin && !windows

package platform

// Notify is a no-op on platforms without a supported notification service.
func Notify(string, string, Options) error { return nil }
