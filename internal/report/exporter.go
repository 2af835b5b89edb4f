package report

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

// ExportJSON dumps the whole snapshot for downstream tooling, e.g. the
// image-card renderer that consumes the same aggregated model.
func (e *Exporter) ExportJSON(snap *Snapshot, filename string) error {
	data, err := json.MarshalIndent(snap, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(e.OutputDir, filename), data, 0644)
}
