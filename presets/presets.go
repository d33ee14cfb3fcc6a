// Package presets holds the built-in tempo presets and loads custom ones from YAML.
package presets

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/benjamonnguyen/puttempo-go"
)

const DefaultID = "default-standard"

type Preset struct {
	ID           string
	Name         string
	Description  string
	BPM          float64
	BackRatio    float64
	ForwardRatio float64
	IsDefault    bool
}

func Defaults() []Preset {
	return []Preset{
		{ID: "default-standard", Name: "Standard", Description: "everyday practice", BPM: 85, BackRatio: 2, ForwardRatio: 1, IsDefault: true},
		{ID: "default-slow", Name: "Slow", Description: "beginners and long putts", BPM: 70, BackRatio: 2, ForwardRatio: 1, IsDefault: true},
		{ID: "default-fast", Name: "Fast", Description: "short putts", BPM: 100, BackRatio: 2, ForwardRatio: 1, IsDefault: true},
		{ID: "default-equal", Name: "Equal", Description: "even back and through", BPM: 85, BackRatio: 1, ForwardRatio: 1, IsDefault: true},
	}
}

func (p Preset) Ref() puttempo.PresetRef {
	return puttempo.PresetRef{ID: p.ID, Name: p.Name}
}

// Apply returns cfg with the preset's tempo and ratio.
func (p Preset) Apply(cfg puttempo.TempoConfig) puttempo.TempoConfig {
	cfg.BPM = p.BPM
	cfg.BackRatio = p.BackRatio
	cfg.ForwardRatio = p.ForwardRatio
	return cfg
}

func Find(presets []Preset, id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

type yamlFile struct {
	Presets []yamlPreset `yaml:"presets"`
}

type yamlPreset struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	BPM          float64 `yaml:"bpm"`
	BackRatio    float64 `yaml:"back_ratio"`
	ForwardRatio float64 `yaml:"forward_ratio"`
}

// Load returns the defaults followed by the custom presets in the YAML file
// at path. A missing file or empty path yields only the defaults.
func Load(path string) ([]Preset, error) {
	presets := Defaults()
	if path == "" {
		return presets, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return presets, nil
		}
		return nil, errors.Wrap(err, "read presets file")
	}

	var file yamlFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(err, "parse presets yaml %s", path)
	}

	for _, yp := range file.Presets {
		p := Preset{
			ID:           yp.ID,
			Name:         yp.Name,
			Description:  yp.Description,
			BPM:          yp.BPM,
			BackRatio:    yp.BackRatio,
			ForwardRatio: yp.ForwardRatio,
		}
		if err := validate(p, presets); err != nil {
			return nil, errors.Wrapf(err, "preset %q", yp.ID)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func validate(p Preset, existing []Preset) error {
	if p.ID == "" {
		return errors.New("missing id")
	}
	if p.Name == "" {
		return errors.New("missing name")
	}
	if _, dup := Find(existing, p.ID); dup {
		return errors.New("duplicate id")
	}
	return p.Apply(puttempo.DefaultTempoConfig()).Validate()
}
