package colorfind

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownPreset is returned for color names outside the preset set.
var ErrUnknownPreset = errors.New("colorfind: unknown preset")

// empirically chosen ranges
var builtins = map[string]Bounds{
	"red":   {Lower: HSV{146, 141, 77}, Upper: HSV{179, 255, 255}},
	"green": {Lower: HSV{44, 79, 111}, Upper: HSV{79, 255, 255}},
	"blue":  {Lower: HSV{103, 68, 130}, Upper: HSV{128, 255, 255}},
}

// Preset is the name of a builtin color range, usable as a ColorSpec.
type Preset string

func (p Preset) bounds() (Bounds, error) {
	return PresetBounds(string(p))
}

// PresetNames lists the builtin preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PresetBounds resolves a builtin preset name. Unknown names log a
// warning listing the valid names and fail with ErrUnknownPreset.
func PresetBounds(name string) (Bounds, error) {
	b, ok := builtins[name]
	if !ok {
		names := PresetNames()
		log.Warn().Str("name", name).Strs("available", names).Msg("color not defined")
		return Bounds{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownPreset, name, strings.Join(names, ", "))
	}
	return b, nil
}
