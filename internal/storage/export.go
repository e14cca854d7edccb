package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/flycam/internal/sim"
)

type ExportData struct {
	Script    string       `json:"script"`
	Dt        float64      `json:"dt"`
	Duration  float64      `json:"duration"`
	Steps     int          `json:"steps"`
	Distance  float64      `json:"distance"`
	Times     []float64    `json:"times"`
	Positions [][3]float64 `json:"positions"`
	Rotations [][4]float64 `json:"rotations"`

	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// ExportJSON writes a run as a single JSON document, rotations as [w x y z].
func ExportJSON(w io.Writer, script *sim.Script, result *sim.Result) error {
	data := ExportData{
		Script:    script.Name,
		Dt:        script.Dt,
		Duration:  script.Duration,
		Steps:     len(result.Samples),
		Distance:  result.Distance,
		Times:     make([]float64, len(result.Samples)),
		Positions: make([][3]float64, len(result.Samples)),
		Rotations: make([][4]float64, len(result.Samples)),
		Metrics:   result.Metrics,
	}

	for i, smp := range result.Samples {
		q := smp.Rotation
		data.Times[i] = smp.Time
		data.Positions[i] = [3]float64(smp.Position)
		data.Rotations[i] = [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
