package platform

// AppName identifies the application to the host notification service.
const AppName = "PixelPad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image the notification should
	// show next to its text, usually the PNG that was just saved.
	IconPath string
	// Timeout is how long the notification stays visible in milliseconds.
	// Zero selects the platform default.
	Timeout int32
}
