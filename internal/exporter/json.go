package exporter

import (
	"encoding/json"
	"log/slog"

	"mrtcli/internal/errors"
	"mrtcli/internal/files"
	"mrtcli/pkg/contracts/domain"
)

// JSONWriter exports the consolidated dataset as a pretty-printed JSON
// document.
type JSONWriter struct {
	files *files.Manager
}

// NewJSONWriter creates a new JSON writer instance.
func NewJSONWriter(manager *files.Manager) *JSONWriter {
	return &JSONWriter{files: manager}
}

// WriteDataset serializes the dataset with four-space indentation and
// overwrites the artifact at path. Key order is deterministic: date first,
// then the time field, then stations in first-seen order. A failed write is
// fatal to the run; producing this artifact is the batch's whole purpose.
func (w *JSONWriter) WriteDataset(dataset domain.Dataset, path string) error {
	data, err := json.MarshalIndent(dataset, "", "    ")
	if err != nil {
		return errors.NewStorageError("failed to encode dataset", err)
	}

	if err := w.files.WriteFile(path, data); err != nil {
		return errors.NewStorageError("failed to write dataset", err)
	}

	slog.Info("Wrote dataset",
		slog.String("path", path),
		slog.Int("size_bytes", len(data)),
		slog.Int("observations", len(dataset.Times)),
		slog.Int("stations", len(dataset.Series)))

	return nil
}
