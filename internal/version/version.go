// ABOUTME: Version constants for the wavetile tools
// ABOUTME: Reported in logs, the preview server page, and export metadata
package version

const (
	// Version is the software version
	Version = "0.1.0"

	// Product is the product name reported to peers
	Product = "Wavetile"

	// Manufacturer identifies the project
	Manufacturer = "Wavetile Project"
)
