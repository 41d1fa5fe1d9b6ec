// pkg/render/palette.go
package render

import (
	"image/color"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
)

var categoryColors = map[entity.Category]color.RGBA{
	entity.Neutral: {220, 220, 220, 255},
	entity.Red:     {255, 0, 0, 255},
	entity.Blue:    {0, 0, 255, 255},
	entity.Green:   {0, 255, 0, 255},
	entity.Yellow:  {255, 255, 0, 255},
	entity.Magenta: {255, 0, 255, 255},
	entity.Cyan:    {0, 255, 255, 255},
	entity.Orange:  {255, 165, 0, 255},
	entity.Purple:  {128, 0, 128, 255},
	entity.Pink:    {255, 192, 203, 255},
	entity.Teal:    {0, 128, 128, 255},
}

// ArenaColor is the outline color of the coliseum arena ring
var ArenaColor = color.RGBA{255, 255, 255, 255}

// CategoryColor returns the display color of a category. Unknown categories
// are drawn white.
func CategoryColor(c entity.Category) color.RGBA {
	if rgba, ok := categoryColors[c]; ok {
		return rgba
	}
	return color.RGBA{255, 255, 255, 255}
}

// Faded scales a color's alpha by opacity, where entity.MaxOpacity is fully
// opaque and zero is invisible.
func Faded(c color.RGBA, opacity int) color.RGBA {
	switch {
	case opacity <= 0:
		c.A = 0
	case opacity < entity.MaxOpacity:
		c.A = uint8(int(c.A) * opacity / entity.MaxOpacity)
	}
	return c
}
