package config

// Application constants - all hardcoded values for the MRT Ridership Extractor
const (
	// Application Info
	AppName    = "MRT Ridership Extractor"
	AppVersion = "0.2.0"

	// Dataset versions. v1 is the original hourly pipeline (signal in sheet
	// column 2, "hour" output field); v2 is the later revision (signal in
	// sheet column 6, "time" output field, neighbor-based missing values).
	DatasetVersionV1 = "v1"
	DatasetVersionV2 = "v2"

	// Sheet contract
	SheetName       = "Daily"
	SheetMaxColumn  = 27
	MarkerText      = "Entry"
	ExitLabel       = "Exit"
	DashLiteral     = "-"
	WorkbookPattern = "*.xlsx"

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultCleanedDir = "cleaned"
	DefaultLogsDir    = "logs"

	// Artifacts
	DatasetFileName       = "mrt_data.json"
	DiagnosticsDateFormat = "02January2006" // 26August2026-log.txt

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
