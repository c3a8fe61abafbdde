// Package config loads user preferences from an rc file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/pixelpad/internal/history"
	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/theme"
	"github.com/example/pixelpad/internal/tool"
)

// Canvas holds the initial canvas settings.
type Canvas struct {
	Width      int
	Height     int
	Background color.RGBA
}

// Brush holds the initial brush settings.
type Brush struct {
	Color color.RGBA
	Size  int
	Shape surface.Shape
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	Canvas      Canvas
	Brush       Brush
	HistorySize int
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // empty lets PIXELPAD_THEME and the built-in default apply
		Canvas: Canvas{
			Width:      surface.DefaultWidth,
			Height:     surface.DefaultHeight,
			Background: color.RGBA{255, 255, 255, 255},
		},
		Brush: Brush{
			Color: tool.DefaultBrushColor,
			Size:  tool.MinBrushSize,
			Shape: surface.ShapeSquare,
		},
		HistorySize: history.DefaultCapacity,
		Themes:      make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "background = %s\n", theme.Hex(c.Canvas.Background))
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Brush.Color))
	fmt.Fprintf(&sb, "size = %d\n", c.Brush.Size)
	fmt.Fprintf(&sb, "shape = %s\n", c.Brush.Shape)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.HistorySize)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Format(&sb)
		sb.WriteString("\n")
	}

	return sb.String()
}
