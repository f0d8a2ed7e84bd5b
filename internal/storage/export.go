package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/voyage/internal/replay"
)

type ExportData struct {
	Run     RunMetadata     `json:"run"`
	Samples []replay.Sample `json:"samples"`
}

// ExportJSON writes the run and its samples as one JSON document to w.
func ExportJSON(w io.Writer, meta *RunMetadata, trace *replay.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Samples: trace.Samples})
}

func ExportJSONFile(path string, meta *RunMetadata, trace *replay.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, trace)
}
