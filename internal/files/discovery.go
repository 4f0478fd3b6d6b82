package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Workbook describes one discovered workbook file. Label is the filename
// stem before the first dot, used verbatim as the year-month prefix of
// generated date tokens.
type Workbook struct {
	Path    string
	Name    string
	Label   string
	Size    int64
	ModTime time.Time
}

// Discovery provides workbook discovery operations relative to a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks lists the workbook files in the given directory, ordered
// chronologically by their year-month label. Date generation depends on
// files arriving in calendar order, so directory enumeration order is never
// trusted. Office lock files ("~$...") are skipped.
func (d *Discovery) FindWorkbooks(dir string) ([]Workbook, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []Workbook
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, Workbook{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Label:   LabelFromName(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sortWorkbooks(files)
	return files, nil
}

// LabelFromName returns the filename stem before the first dot.
func LabelFromName(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// sortWorkbooks orders files chronologically by label. Labels that do not
// parse as a zero-padded year-month sort lexicographically after every
// conforming label, and the file name breaks remaining ties so the order is
// total and platform independent.
func sortWorkbooks(files []Workbook) {
	sort.Slice(files, func(i, j int) bool {
		ti, iOK := parseLabel(files[i].Label)
		tj, jOK := parseLabel(files[j].Label)
		switch {
		case iOK && jOK:
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
		case iOK:
			return true
		case jOK:
			return false
		default:
			if files[i].Label != files[j].Label {
				return files[i].Label < files[j].Label
			}
		}
		return files[i].Name < files[j].Name
	})
}

func parseLabel(label string) (time.Time, bool) {
	t, err := time.Parse("2006-01", label)
	return t, err == nil
}
