package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// drawCmd runs drawing commands without a window and writes the result.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	script      string
	execs       commandList
	output      string
	width       int
	height      int
	toClipboard bool
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.script, "script", "", "file of drawing commands, - for stdin")
	fs.Var(&d.execs, "e", "drawing command to run after the script (may be specified multiple times)")
	fs.StringVar(&d.output, "output", "", "write the drawing to this PNG file when done")
	fs.IntVar(&d.width, "width", 0, "canvas width in pixels (overrides the config)")
	fs.IntVar(&d.height, "height", 0, "canvas height in pixels (overrides the config)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if d.script == "" && len(d.execs) == 0 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	state := d.newState(canvasOverride(d.root, d.width, d.height)...)
	if d.script != "" {
		in, closeFn, err := d.openScript()
		if err != nil {
			return err
		}
		err = state.Exec(in, d.stdout)
		closeFn()
		if err != nil {
			return fmt.Errorf("script %s: %w", d.script, err)
		}
	}
	if err := runCommands(state, d.execs, d.stdout); err != nil {
		return err
	}
	if d.output != "" {
		path, err := state.Save(d.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.stdout, "saved %s\n", path)
	}
	if d.toClipboard {
		if err := state.Copy(); err != nil {
			return err
		}
		fmt.Fprintln(d.stdout, "image copied to clipboard")
	}
	return nil
}

func (d *drawCmd) openScript() (io.Reader, func(), error) {
	if d.script == "-" {
		return d.stdin, func() {}, nil
	}
	f, err := os.Open(d.script)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}
