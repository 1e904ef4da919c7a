package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile tunes one agent deployment. Zero values fall back to the
// component defaults.
type Profile struct {
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	Hypotheticals int     `yaml:"hypotheticals"`
	Conditionals  int     `yaml:"conditionals"`
	Rounds        int     `yaml:"rounds"`
	Workers       int     `yaml:"workers"`
	ResearchIters int     `yaml:"research_iters"`
	MarketsPerRun int     `yaml:"markets_per_run"`
	TimeoutSec    int     `yaml:"timeout_sec"`
	PlaceBets     bool    `yaml:"place_bets"`
	BetAmount     float64 `yaml:"bet_amount"`
}

// Profiles maps agent names to their deployment settings.
type Profiles map[string]Profile

// LoadProfiles reads a YAML profile file. A missing path yields an empty
// set, not an error, so the CLI works without one.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return Profiles{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profiles{}, nil
		}
		return nil, err
	}
	var out Profiles
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("config: parse profiles %s: %w", path, err)
	}
	if out == nil {
		out = Profiles{}
	}
	return out, nil
}
