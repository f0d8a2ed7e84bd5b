package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/replay"
)

var traceHeader = []string{"frame", "time", "position", "velocity", "moving", "manual", "mode", "nearest"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Delta     float64            `json:"delta"`
	Frames    int                `json:"frames"`
	Friction  float64            `json:"friction"`
	Accel     float64            `json:"acceleration"`
	MaxVel    float64            `json:"max_velocity"`
	Anchors   []replay.Anchor    `json:"anchors,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and trace.csv into a fresh run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, trace *replay.Trace) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Script, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Delta = trace.Delta
	meta.Frames = len(trace.Samples)
	meta.Anchors = trace.Anchors

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(traceHeader); err != nil {
		return "", err
	}
	for _, smp := range trace.Samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Position, 'f', -1, 64),
			strconv.FormatFloat(smp.Velocity, 'f', -1, 64),
			strconv.FormatBool(smp.Moving),
			strconv.FormatBool(smp.Manual),
			smp.Mode.String(),
			smp.NearestID,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, oldest first. Unreadable run directories are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads a stored trace back. Malformed rows are skipped.
func (s *Store) LoadTrace(runID string) (*replay.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := replay.NewTrace(meta.Script, meta.Delta, len(records))
	trace.Anchors = meta.Anchors
	for i := 1; i < len(records); i++ {
		smp, ok := parseSample(records[i])
		if !ok {
			continue
		}
		trace.Samples = append(trace.Samples, smp)
	}

	return trace, nil
}

func parseSample(rec []string) (replay.Sample, bool) {
	if len(rec) < len(traceHeader) {
		return replay.Sample{}, false
	}
	frame, err := strconv.Atoi(rec[0])
	if err != nil {
		return replay.Sample{}, false
	}
	vals := make([]float64, 3)
	for i := range vals {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return replay.Sample{}, false
		}
		vals[i] = v
	}
	moving, _ := strconv.ParseBool(rec[4])
	manual, _ := strconv.ParseBool(rec[5])
	var mode helm.Mode
	if err := mode.UnmarshalText([]byte(rec[6])); err != nil {
		return replay.Sample{}, false
	}

	return replay.Sample{
		Frame:     frame,
		Time:      vals[0],
		Position:  vals[1],
		Velocity:  vals[2],
		Moving:    moving,
		Manual:    manual,
		Mode:      mode,
		NearestID: rec[7],
	}, true
}
