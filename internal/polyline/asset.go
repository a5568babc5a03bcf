package polyline

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultAssetPath is where the viewer looks for a polyline when none is given.
const DefaultAssetPath = "assets/polyline.yaml"

// Asset is the YAML definition of a polyline actor (e.g. assets/polyline.yaml).
// Points are [x, y, z]; RotationSpeed is [roll, pitch, yaw] in degrees per second.
type Asset struct {
	Points        [][3]float32 `yaml:"points"`
	Thickness     float32      `yaml:"thickness"`
	Color         string       `yaml:"color,omitempty"`
	RotationSpeed [3]float32   `yaml:"rotation_speed,omitempty"`
	Material      string       `yaml:"material,omitempty"`
}

// DefaultAsset returns a small zig-zag so the viewer shows something without an asset file.
func DefaultAsset() Asset {
	return Asset{
		Points: [][3]float32{
			{-4, 0, 0}, {-2, 2, 0}, {0, 0, 0}, {2, 2, 0}, {4, 0, 0},
		},
		Thickness:     0.5,
		Color:         "#ff8800",
		RotationSpeed: [3]float32{0, 0, 15},
		Material:      "materials/polyline.yaml",
	}
}

// LoadAsset reads and parses the asset file at path.
func LoadAsset(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, fmt.Errorf("read asset: %w", err)
	}
	a, err := ParseAsset(data)
	if err != nil {
		return Asset{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseAsset parses YAML asset data. The color must parse; an empty color means white.
func ParseAsset(data []byte) (Asset, error) {
	var a Asset
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Asset{}, fmt.Errorf("parse asset: %w", err)
	}
	if _, err := a.NRGBA(); err != nil {
		return Asset{}, err
	}
	return a, nil
}

// Marshal returns the YAML encoding of a.
func (a Asset) Marshal() ([]byte, error) {
	return yaml.Marshal(a)
}

// Vectors returns the points as vectors.
func (a Asset) Vectors() []math32.Vector3 {
	out := make([]math32.Vector3, len(a.Points))
	for i, p := range a.Points {
		out[i] = math32.Vec3(p[0], p[1], p[2])
	}
	return out
}

// PointsFrom converts vectors to the asset's [x, y, z] form.
func PointsFrom(points []math32.Vector3) [][3]float32 {
	out := make([][3]float32, len(points))
	for i, p := range points {
		out[i] = [3]float32{p.X, p.Y, p.Z}
	}
	return out
}

// NRGBA parses Color as a hex value (#rgb, #rrggbb, #rrggbbaa) or a CSS color name.
func (a Asset) NRGBA() (color.NRGBA, error) {
	return ParseColor(a.Color)
}

// ParseColor parses s as a hex value or CSS color name. Empty means opaque white.
// The result has straight (non-premultiplied) alpha: "#10203040" is {0x10, 0x20, 0x30, 0x40}.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{255, 255, 255, 255}, nil
	}
	c, err := parseColor(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func parseColor(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		c, err := colors.FromName(strings.ToLower(s))
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBAModel.Convert(c).(color.NRGBA), nil
	}
	// colors.FromHex premultiplies, which loses precision for translucent
	// values; parse the color opaque and take the alpha byte separately.
	hex := strings.TrimPrefix(s, "#")
	alpha := uint8(255)
	if len(hex) == 8 {
		v, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha = uint8(v)
		hex = hex[:6]
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return color.NRGBA{}, err
	}
	c, err := colors.FromHex("#" + hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// FormatColor returns c as "#rrggbbaa" with straight alpha, the inverse of ParseColor.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Clone returns a deep copy so callers can't alias the actor's points.
func (a Asset) Clone() Asset {
	var out Asset
	if err := copier.CopyWithOption(&out, &a, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types; fall back to a manual copy.
		out = a
		out.Points = append([][3]float32(nil), a.Points...)
	}
	return out
}
