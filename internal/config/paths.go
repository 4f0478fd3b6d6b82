package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	CleanedDir    string
	LogsDir       string

	// Well-known artifact files
	DatasetJSON string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	// dist/
	//   ├── data/      (monthly ridership workbooks)
	//   ├── cleaned/   (exported dataset)
	//   └── logs/      (application log + dated diagnostics)

	cleanedDir := filepath.Join(exeDir, "cleaned")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       filepath.Join(exeDir, "data"),
		CleanedDir:    cleanedDir,
		LogsDir:       filepath.Join(exeDir, "logs"),

		DatasetJSON: filepath.Join(cleanedDir, DatasetFileName),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.CleanedDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetWorkbookPath returns the path for an input workbook
func (p *Paths) GetWorkbookPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetCleanedPath returns the path for a cleaned output artifact
func (p *Paths) GetCleanedPath(filename string) string {
	return filepath.Join(p.CleanedDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetDiagnosticsPath returns the path for the dated diagnostics log,
// e.g. logs/26August2026-log.txt.
func (p *Paths) GetDiagnosticsPath(date time.Time) string {
	filename := fmt.Sprintf("%s-log.txt", date.Format(DiagnosticsDateFormat))
	return filepath.Join(p.LogsDir, filename)
}

// GetDatasetPath returns the path for the exported dataset file
func (p *Paths) GetDatasetPath() string {
	return p.DatasetJSON
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("cleaned", p.CleanedDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("artifacts",
			slog.String("dataset_json", p.DatasetJSON),
		))
}
