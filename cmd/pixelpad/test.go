package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/example/pixelpad/internal/appstate"
)

// testVerificationCmd renders a single frame of the window from a JSON
// description so the UI can be checked without a display.
type testVerificationCmd struct {
	*root
	fs     *flag.FlagSet
	input  string
	output string
}

func parseTestCmd(args []string, r *root) (*testVerificationCmd, error) {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	c := &testVerificationCmd{
		root: r,
		fs:   fs,
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 || fs.Arg(0) != "verification" {
		return nil, &UsageError{of: c}
	}
	c.fs = flag.NewFlagSet("test verification", flag.ExitOnError)
	c.fs.StringVar(&c.input, "input", "", "input configuration file (JSON)")
	c.fs.StringVar(&c.output, "output", "", "output PNG file")
	if err := c.fs.Parse(fs.Args()[1:]); err != nil {
		return nil, err
	}
	if c.input == "" || c.output == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// VerificationConfig describes the frame to render.
type VerificationConfig struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	CanvasWidth  int      `json:"canvas_width"`
	CanvasHeight int      `json:"canvas_height"`
	Zoom         float64  `json:"zoom"`
	Script       []string `json:"script"`
	Pending      string   `json:"pending"`
	Pointer      *[2]int  `json:"pointer"`
	Message      string   `json:"message"`
}

func (c *testVerificationCmd) Run() error {
	f, err := os.Open(c.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var cfg VerificationConfig
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return renderVerification(c.root, cfg, c.output)
}

func renderVerification(r *root, cfg VerificationConfig, output string) error {
	state := r.newState(canvasOverride(r, cfg.CanvasWidth, cfg.CanvasHeight)...)
	if err := runCommands(state, cfg.Script, r.stdout); err != nil {
		return err
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", width, height)
	}

	st := state.PaintState(width, height)
	st.Zoom = cfg.Zoom
	st.Pending = cfg.Pending
	st.Message = cfg.Message
	if cfg.Message != "" {
		st.MessageUntil = time.Now().Add(time.Hour)
	}
	if cfg.Pointer != nil {
		st.Pointer = &image.Point{X: cfg.Pointer[0], Y: cfg.Pointer[1]}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	appstate.DrawScene(context.Background(), dst, st)

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, dst); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (c *testVerificationCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
