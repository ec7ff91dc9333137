package config

import (
	"fmt"
	"strings"
)

// Preset names a fixed board size and bomb count. Best times are kept
// per preset.
type Preset struct {
	Name      string
	Width     int
	Height    int
	BombCount int
}

var (
	Easy   = Preset{Name: "easy", Width: 11, Height: 8, BombCount: 12}
	Medium = Preset{Name: "medium", Width: 19, Height: 14, BombCount: 45}
	Hard   = Preset{Name: "hard", Width: 25, Height: 20, BombCount: 100}

	Presets = []Preset{Easy, Medium, Hard}
)

func PresetByName(name string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// Preset implements [fmt.Stringer]
func (p Preset) String() string {
	return fmt.Sprintf("%s (%dx%d, %d bombs)", p.Name, p.Width, p.Height, p.BombCount)
}
