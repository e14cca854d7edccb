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

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flycam/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{
	"time",
	"px", "py", "pz",
	"qw", "qx", "qy", "qz",
	"mx", "my", "mz",
	"rx", "ry", "rz",
}

// Store keeps replay runs as one directory per run.
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
	ID         string     `json:"id"`
	Script     string     `json:"script"`
	Preset     string     `json:"preset"`
	Timestamp  time.Time  `json:"timestamp"`
	Dt         float64    `json:"dt"`
	Duration   float64    `json:"duration"`
	Events     int        `json:"events"`
	Steps      int        `json:"steps"`
	Distance   float64    `json:"distance"`
	FinalPos   [3]float64 `json:"final_position"`
	FinalSpeed float64    `json:"movement_speed"`

	Metrics map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and samples.csv for one run and returns its id.
func (s *Store) Save(script *sim.Script, preset string, speed float64, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", script.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	final := result.Final()
	meta := RunMetadata{
		ID:         runID,
		Script:     script.Name,
		Preset:     preset,
		Timestamp:  now,
		Dt:         script.Dt,
		Duration:   script.Duration,
		Events:     result.Dispatched,
		Steps:      len(result.Samples),
		Distance:   result.Distance,
		FinalPos:   [3]float64(final.Position),
		FinalSpeed: speed,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(encodeSample(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads back a run's samples. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
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

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := decodeSample(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func encodeSample(smp sim.Sample) []string {
	q := smp.Rotation
	vals := []float64{
		smp.Time,
		smp.Position[0], smp.Position[1], smp.Position[2],
		q.W, q.V[0], q.V[1], q.V[2],
		smp.Move[0], smp.Move[1], smp.Move[2],
		smp.Rotate[0], smp.Rotate[1], smp.Rotate[2],
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return row
}

func decodeSample(record []string) (sim.Sample, bool) {
	if len(record) != len(sampleHeader) {
		return sim.Sample{}, false
	}
	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return sim.Sample{}, false
		}
		vals[i] = v
	}
	return sim.Sample{
		Time:     vals[0],
		Position: mgl64.Vec3{vals[1], vals[2], vals[3]},
		Rotation: mgl64.Quat{W: vals[4], V: mgl64.Vec3{vals[5], vals[6], vals[7]}},
		Move:     mgl64.Vec3{vals[8], vals[9], vals[10]},
		Rotate:   mgl64.Vec3{vals[11], vals[12], vals[13]},
	}, true
}
