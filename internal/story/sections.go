package story

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SectionCount is the number of scrollable page sections.
const SectionCount = 4

// ErrSectionCount is returned when a section table does not have SectionCount entries.
var ErrSectionCount = errors.New("story: wrong number of sections")

// SectionConfig is the scene configuration for one page section.
type SectionConfig struct {
	Name string `yaml:"name"`

	ActorPosition  mgl32.Vec3 `yaml:"actor_position"`
	ActorRotation  mgl32.Vec3 `yaml:"actor_rotation"`
	CameraPosition mgl32.Vec3 `yaml:"camera_position"`
	CameraLookAt   mgl32.Vec3 `yaml:"camera_look_at"`

	LightColor       Color   `yaml:"light_color"`
	LightIntensity   float32 `yaml:"light_intensity"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`

	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`

	ShowCriminals bool `yaml:"show_criminals"`
	Fighting      bool `yaml:"fighting"`
}

// DefaultSections returns the built-in section table in page order.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{
			Name:             "Who We Are",
			CameraPosition:   mgl32.Vec3{0, 3, 8},
			CameraLookAt:     mgl32.Vec3{0, 1, 0},
			LightColor:       0xffcc00,
			LightIntensity:   1.3,
			AmbientIntensity: 0.7,
			AutoRotate:       true,
			AutoRotateSpeed:  0.8,
		},
		{
			Name:             "What We Do",
			ActorPosition:    mgl32.Vec3{-1, 0.5, -1},
			ActorRotation:    mgl32.Vec3{0, math.Pi / 6, 0},
			CameraPosition:   mgl32.Vec3{2, 1.5, 3},
			CameraLookAt:     mgl32.Vec3{-1, 0.5, -1},
			LightColor:       0x0066ff,
			LightIntensity:   1.0,
			AmbientIntensity: 0.5,
			ShowCriminals:    true,
		},
		{
			Name:             "Our Services",
			ActorPosition:    mgl32.Vec3{1, -0.5, 1},
			ActorRotation:    mgl32.Vec3{-math.Pi / 8, -math.Pi / 4, 0},
			CameraPosition:   mgl32.Vec3{-2, -1, 4},
			CameraLookAt:     mgl32.Vec3{1, -0.5, 1},
			LightColor:       0x9900ff,
			LightIntensity:   1.4,
			AmbientIntensity: 0.7,
			AutoRotate:       true,
			AutoRotateSpeed:  0.3,
			ShowCriminals:    true,
		},
		{
			Name:             "Join The Mission",
			ActorRotation:    mgl32.Vec3{0, math.Pi, 0},
			CameraPosition:   mgl32.Vec3{0, 1, 5},
			LightColor:       0xffcc00,
			LightIntensity:   1.5,
			AmbientIntensity: 0.8,
			ShowCriminals:    true,
			Fighting:         true,
		},
	}
}

// LoadSections reads a section table from a YAML file of the form
//
//	sections:
//	  - name: Who We Are
//	    camera_position: [0, 3, 8]
//	    light_color: "#ffcc00"
//	    ...
func LoadSections(path string) ([]SectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sections: %w", err)
	}

	var doc struct {
		Sections []SectionConfig `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing sections %s: %w", path, err)
	}
	if err := ValidateSections(doc.Sections); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Sections, nil
}

// ValidateSections checks the table size.
func ValidateSections(sections []SectionConfig) error {
	if len(sections) != SectionCount {
		return fmt.Errorf("%w: got %d, want %d", ErrSectionCount, len(sections), SectionCount)
	}
	return nil
}

// Color is a 0xRRGGBB color. In YAML it is written as "#rrggbb", "0xrrggbb"
// or a plain integer.
type Color uint32

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	s := strings.TrimSpace(value.Value)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil || v > 0xffffff {
		return fmt.Errorf("invalid color %q at line %d", value.Value, value.Line)
	}
	*c = Color(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%06x", uint32(c)), nil
}
