package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/theme"
)

// Parse reads configuration from an io.Reader. Keys it does not know are
// ignored; malformed values are reported with their section and line.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			currentTheme = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		key, value, ok := cutKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case section == "":
			setRootField(cfg, key, value)
		case section == "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case section == "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case section == "history":
			err = setHistoryField(cfg, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			where := "root section"
			if section != "" {
				where = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d: error in %s: %w", lineNo, where, err)
		}
	}

	return cfg, scanner.Err()
}

// cutKeyValue splits "key = value" or "Key: value". The separator that
// appears first wins, so colour values containing ':' are not split.
func cutKeyValue(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	colon := strings.Index(line, ":")
	sep := eq
	if sep < 0 || (colon >= 0 && colon < sep) {
		sep = colon
	}
	if sep < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:sep])
	value = strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
}

func setCanvasField(c *Canvas, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "width":
		c.Width, err = parsePositive(key, value)
	case "height":
		c.Height, err = parsePositive(key, value)
	case "background":
		c.Background, err = parseColor(key, value)
	}
	return err
}

func setBrushField(b *Brush, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "color", "colour":
		b.Color, err = parseColor(key, value)
	case "size":
		b.Size, err = parsePositive(key, value)
	case "shape":
		b.Shape, err = surface.ParseShape(value)
	}
	return err
}

func setHistoryField(cfg *Config, key, value string) error {
	if strings.ToLower(key) != "size" {
		return nil
	}
	n, err := parsePositive(key, value)
	if err != nil {
		return err
	}
	cfg.HistorySize = n
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("key %s must be at least 1, got %d", key, n)
	}
	return n, nil
}

func parseColor(key, value string) (color.RGBA, error) {
	col, err := theme.ParseColor(value)
	if err != nil {
		return col, fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	return col, nil
}
