// Package files provides file system operations and workbook discovery for
// the MRT ridership extraction pipeline.
//
// This package contains two main components:
//
// Discovery: Lists the monthly workbook files under the data directory and
// orders them chronologically by their year-month label. The pipeline's
// synthetic dates depend on calendar order, so raw directory enumeration
// order is never used.
//
// Manager: Provides basic file operations such as writing, appending, and
// existence checks. Relative paths are resolved against the configured
// directory layout by prefix, keeping callers portable across installs.
//
// Example usage:
//
//	// Create a discovery instance
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Find the monthly workbooks, in calendar order
//	workbooks, err := discovery.FindWorkbooks("data")
//
//	// Create a manager instance
//	manager := files.NewManager(paths)
//
//	// Check if an earlier export exists
//	if manager.FileExists("cleaned/mrt_data.json") {
//	    // Process file
//	}
package files
