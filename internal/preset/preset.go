// Package preset loads and saves prompt presets: a TOML file bundling the
// two role prompts (and optionally a model) so teams can share tuned
// generator/critic pairs.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Preset bundles the role prompts for a run.
type Preset struct {
	Name             string `toml:"name,omitempty"`
	Model            string `toml:"model,omitempty"`
	GenerationPrompt string `toml:"generation_prompt"`
	CritiquePrompt   string `toml:"critique_prompt"`
}

var ErrIncomplete = errors.New("preset must set both generation_prompt and critique_prompt")

// Load reads a preset file. A missing file is an error here — presets are
// only consulted when explicitly requested.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}

	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing preset %s: %w", path, err)
	}
	if strings.TrimSpace(p.GenerationPrompt) == "" || strings.TrimSpace(p.CritiquePrompt) == "" {
		return nil, ErrIncomplete
	}
	return &p, nil
}

// Save writes the preset to the given path, creating parent directories as
// needed.
func Save(path string, p *Preset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preset: %w", err)
	}
	return nil
}
