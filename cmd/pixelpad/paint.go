package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/example/pixelpad/internal/appstate"
	"github.com/example/pixelpad/internal/config"
)

// paintCmd opens the drawing window.
type paintCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	width  int
	height int
	replay string
	execs  commandList
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.output, "output", "", "file written by Ctrl+S (defaults to drawing.png in save_dir)")
	fs.IntVar(&p.width, "width", 0, "canvas width in pixels (overrides the config)")
	fs.IntVar(&p.height, "height", 0, "canvas height in pixels (overrides the config)")
	fs.StringVar(&p.replay, "replay", "", "script file replayed into the window once it opens")
	fs.Var(&p.execs, "e", "command applied before the window opens (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	var opts []appstate.Option
	if p.output != "" {
		opts = append(opts, appstate.WithOutput(p.output))
	}
	opts = append(opts, canvasOverride(p.root, p.width, p.height)...)
	opts = append(opts, appstate.WithTitle(windowTitle(titleOptions{File: p.output, Mode: "paint"})))
	state := p.newState(opts...)
	if err := runCommands(state, p.execs, p.stdout); err != nil {
		return err
	}
	if p.replay != "" {
		data, err := os.ReadFile(p.replay)
		if err != nil {
			return fmt.Errorf("read replay script: %w", err)
		}
		go replay(state, strings.Split(string(data), "\n"), p.stdout)
	}
	state.Run()
	return nil
}

// canvasOverride turns -width/-height flags into a size option. Zero keeps
// the configured dimension.
func canvasOverride(r *root, width, height int) []appstate.Option {
	if width <= 0 && height <= 0 {
		return nil
	}
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	cw, ch := cfg.Canvas.Width, cfg.Canvas.Height
	if width > 0 {
		cw = width
	}
	if height > 0 {
		ch = height
	}
	return []appstate.Option{appstate.WithCanvasSize(cw, ch)}
}

// replayDelay paces replayed lines so the drawing builds up visibly.
const replayDelay = 15 * time.Millisecond

// replay feeds script lines to the window's event loop once it is open.
func replay(state *appstate.AppState, lines []string, out io.Writer) {
	<-state.Ready()
	for i, line := range lines {
		n, line := i+1, line
		state.Post(func(a *appstate.AppState) {
			if err := a.ExecLine(line, out); err != nil {
				log.Printf("replay line %d: %v", n, err)
			}
		})
		time.Sleep(replayDelay)
	}
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}
