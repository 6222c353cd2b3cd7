package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Size     int             `json:"size"`
	Format   string          `json:"format"`
	Rendered int             `json:"rendered"`
	Failed   int             `json:"failed"`
	Entries  []ManifestEntry `json:"entries"`
}

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name    string  `json:"name"`
	Image   string  `json:"image,omitempty"`
	Error   string  `json:"error,omitempty"`
	Seconds float64 `json:"seconds"`
}

// NewManifest summarizes results under a fresh run ID.
func NewManifest(cfg Config, started time.Time, results []Result) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Started: started.UTC(),
		Size:    cfg.Size,
		Format:  cfg.Format,
		Entries: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{Name: r.Name, Seconds: r.Duration.Seconds()}
		if r.Success {
			e.Image = r.Image
			m.Rendered++
		} else {
			e.Error = r.Error
			m.Failed++
		}
		m.Entries[i] = e
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
