// ABOUTME: Version and product identification
// ABOUTME: Shown in the startup banner, the TUI title and the log header
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the program name
	Product = "echosynth"

	// Manufacturer identifies the publisher
	Manufacturer = "Resonate Protocol"
)

// String returns "product version" for banners and log headers
func String() string {
	return Product + " " + Version
}
