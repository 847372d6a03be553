// Package prompts holds the preset registry and prompt assembly for
// suggestion generation.
package prompts

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultPresetName is used when a category does not select a preset.
const DefaultPresetName = "default"

//go:embed presets.yaml
var presetsYAML []byte

type presetFile struct {
	Presets map[string]string `yaml:"presets"`
}

var presets = mustLoadPresets()

func mustLoadPresets() map[string]string {
	var f presetFile
	if err := yaml.Unmarshal(presetsYAML, &f); err != nil {
		panic(fmt.Sprintf("prompts: invalid presets.yaml: %v", err))
	}
	if _, ok := f.Presets[DefaultPresetName]; !ok {
		panic("prompts: presets.yaml must define a 'default' preset")
	}
	return f.Presets
}

// TemplateFor returns the template text for a preset name. Unknown presets
// fall back to the default preset's template; callers that need to detect
// unknown names should use HasPreset.
func TemplateFor(name string) string {
	if t, ok := presets[name]; ok {
		return t
	}
	return presets[DefaultPresetName]
}

// HasPreset reports whether a preset with the given name exists.
func HasPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// PresetNames returns all registered preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
