package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
// For 2048 the preset controls how often a 4 spawns instead of a 2.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known difficulty presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficultyPreset resolves a preset name. The empty string means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (valid: easy, normal, hard)", s)
	}
}

// Spawn4ProbForPreset returns the 4-spawn probability for a difficulty preset.
func Spawn4ProbForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.10
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	cfg.Board.Spawn4Prob = Spawn4ProbForPreset(preset)
}
