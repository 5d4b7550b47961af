// ABOUTME: JSON loading of ready-made peak arrays
// ABOUTME: Accepts bare, wrapped, and nested multi-channel layouts
package peaks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// envelope is the wrapped document form: {"peaks": [...]}.
type envelope struct {
	Peaks json.RawMessage `json:"peaks"`
}

// DecodeJSON reads a peak document and returns one series per channel.
// Three layouts are accepted: a bare array of samples, an array of
// per-channel arrays, and either of those wrapped in a {"peaks": ...}
// object.
func DecodeJSON(r io.Reader) ([][]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("peaks: read: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Peaks != nil {
		raw = env.Peaks
	}

	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested, nil
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("peaks: unrecognized JSON layout: %w", err)
	}
	return [][]float64{flat}, nil
}

// LoadFile reads a peak document from disk.
func LoadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("peaks: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return DecodeJSON(f)
}
