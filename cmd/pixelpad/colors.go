package main

import (
	"flag"
	"fmt"

	"github.com/example/pixelpad/internal/appstate"
	"github.com/example/pixelpad/internal/config"
	"github.com/example/pixelpad/internal/theme"
)

type colorsCmd struct {
	*root
	fs     *flag.FlagSet
	themes bool
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.themes, "themes", false, "list the available themes instead of the palette")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	if c.themes {
		for _, name := range theme.NewLoader().Names() {
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	}
	cfg := c.config
	if cfg == nil {
		cfg = config.New()
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the configured brush color):")
	for idx, entry := range appstate.PaletteColors() {
		marker := " "
		if entry.Color == cfg.Brush.Color {
			marker = "*"
		}
		hex := theme.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
