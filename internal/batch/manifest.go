package batch

import (
	"encoding/json"
	"os"
	"time"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Index  int    `json:"index"`
	Time   string `json:"time"`
	Mode   string `json:"mode"`
	Image  string `json:"image"`
	Digest string `json:"sha256"`
}

// Manifest is the manifest.json document.
type Manifest struct {
	Generated string          `json:"generated"`
	Size      int             `json:"size"`
	Format    string          `json:"format"`
	Frames    []ManifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json listing every successful frame.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Size:      cfg.RenderSize,
		Format:    cfg.Format,
		Frames:    make([]ManifestEntry, 0, len(results)),
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Index:  r.Index,
			Time:   r.Time.Format(time.RFC3339),
			Mode:   r.Mode.String(),
			Image:  r.File,
			Digest: r.Digest,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
