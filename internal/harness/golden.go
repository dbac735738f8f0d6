package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/previewkit/internal/shape"
)

// Snapshot is the serialized form compared against golden files. Plans and
// values use their own deterministic marshalers; the envelope is compact
// JSON, one line per snapshot.
type Snapshot struct {
	ScenarioName string            `json:"scenario_name"`
	Plans        []json.RawMessage `json:"plans"`
	Values       []SnapshotValue   `json:"values"`
}

// SnapshotValue pairs a declaration with its rendered display JSON.
type SnapshotValue struct {
	TypeName string          `json:"type"`
	Value    json.RawMessage `json:"value"`
}

// BuildSnapshot serializes a scenario result.
func BuildSnapshot(name string, r *Result) (*Snapshot, error) {
	snap := &Snapshot{ScenarioName: name, Plans: []json.RawMessage{}, Values: []SnapshotValue{}}
	for _, p := range r.Plans {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal plan %s: %w", p.TypeName, err)
		}
		snap.Plans = append(snap.Plans, b)
	}
	for _, v := range r.Values {
		b, err := shape.MarshalValue(v.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value %s: %w", v.TypeName, err)
		}
		snap.Values = append(snap.Values, SnapshotValue{TypeName: v.TypeName, Value: b})
	}
	return snap, nil
}

// Bytes renders the snapshot as a single compact JSON line.
func (s *Snapshot) Bytes() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// RunWithGolden executes a scenario and compares the snapshot against the
// golden file testdata/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snap, err := BuildSnapshot(scenario.Name, result)
	if err != nil {
		return err
	}
	data, err := snap.Bytes()
	if err != nil {
		return err
	}

	g := goldie.New(t)
	g.Assert(t, scenario.Name, data)
	return nil
}
