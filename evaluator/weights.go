package evaluator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxDepth bounds the configurable search horizon.
const MaxDepth = 8

var ErrBadWeights = errors.New("bad weights")

// Pattern is a 1xN shape matched along every row and column. Shape uses
// 'O' for the evaluated color's stone, 'X' for an opposing stone and '.'
// for a point that may hold anything.
type Pattern struct {
	Name  string  `yaml:"name"`
	Shape string  `yaml:"shape"`
	Bonus float64 `yaml:"bonus"`
}

// Weights is every tunable constant of the static evaluation and of the
// search's per-move adjustment.
type Weights struct {
	// Depth is the search horizon in plies.
	Depth int `yaml:"depth"`
	// Komi is the magnitude of the evaluation's komi term.
	Komi float64 `yaml:"komi"`

	Material     float64   `yaml:"material"`
	EyeBonus     float64   `yaml:"eye-bonus"`
	ChainLiberty float64   `yaml:"chain-liberty"`
	Patterns     []Pattern `yaml:"patterns"`

	// Per-move adjustments, applied from the mover's point of view.
	CaptureBonus float64 `yaml:"capture-bonus"`
	AtariPenalty float64 `yaml:"atari-penalty"`
	LibertyDiff  float64 `yaml:"liberty-diff"`
	MoveMaterial float64 `yaml:"move-material"`

	// CenterDistance is subtracted per point of Manhattan distance from the
	// center when ordering candidates.
	CenterDistance float64 `yaml:"center-distance"`
}

func DefaultWeights() Weights {
	return Weights{
		Depth:        3,
		Komi:         2.5,
		Material:     1,
		EyeBonus:     4,
		ChainLiberty: 0.5,
		Patterns: []Pattern{
			{Name: "live-four", Shape: "OOOO.", Bonus: 3},
			{Name: "dead-four", Shape: "XOOO.", Bonus: -1},
			{Name: "live-three", Shape: "OOO..", Bonus: 2},
		},
		CaptureBonus: 3,
		AtariPenalty: 2,
		LibertyDiff:  1,
		MoveMaterial: 1,
	}
}

// LoadWeights reads a YAML weights file. Keys missing from the file keep
// their default values.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	data, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("%w: %s: %w", ErrBadWeights, path, err)
	}
	return w, w.Validate()
}

func (w Weights) Validate() error {
	if w.Depth < 1 || w.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside 1..%d", ErrBadWeights, w.Depth, MaxDepth)
	}
	if w.Komi < 0 {
		return fmt.Errorf("%w: negative komi %v", ErrBadWeights, w.Komi)
	}
	for _, p := range w.Patterns {
		if _, err := compilePattern(p); err != nil {
			return err
		}
	}
	return nil
}
