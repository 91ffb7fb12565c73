package config

import "fmt"

// presetValues are the knobs a difficulty preset turns.
// A higher fruit bias means more fruit on the board and easier matches.
type presetValues struct {
	fruitBias        float64
	moveLimit        int
	timeLimitSeconds int
}

var presets = map[DifficultyPreset]presetValues{
	DifficultyEasy:   {fruitBias: 0.7, moveLimit: 40, timeLimitSeconds: 240},
	DifficultyNormal: {fruitBias: 0.6, moveLimit: 30, timeLimitSeconds: 180},
	DifficultyHard:   {fruitBias: 0.5, moveLimit: 20, timeLimitSeconds: 120},
}

// ParseDifficulty parses a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset keeps the loaded values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyHarvestPreset modifies the config based on a difficulty preset.
// The fixed preset leaves the configuration exactly as loaded.
func ApplyHarvestPreset(cfg *HarvestConfig, preset DifficultyPreset) {
	v, ok := presets[preset]
	if !ok || IsFixedPreset(preset) {
		return
	}
	cfg.Board.FruitBias = v.fruitBias
	cfg.Modes.MoveLimit = v.moveLimit
	cfg.Modes.TimeLimitSeconds = v.timeLimitSeconds
}
