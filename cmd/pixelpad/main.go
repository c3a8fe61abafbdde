package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelpad/internal/appstate"
	"github.com/example/pixelpad/internal/config"
	"github.com/example/pixelpad/internal/notify"
	"github.com/example/pixelpad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	stdout      io.Writer
	stdin       io.Reader
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("pixelpad", flag.ExitOnError),
		program:  "pixelpad",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stdin:    os.Stdin,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme for the window chrome (default, dark or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "paint":
		cmd, err = parsePaintCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "test":
		cmd, err = parseTestCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PIXELPAD_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// newState creates a drawing session seeded from the configuration. Flags
// of individual commands are applied on top through opts.
func (r *root) newState(opts ...appstate.Option) *appstate.AppState {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	base := []appstate.Option{
		appstate.WithCanvasSize(cfg.Canvas.Width, cfg.Canvas.Height),
		appstate.WithBackground(cfg.Canvas.Background),
		appstate.WithBrush(cfg.Brush.Color, cfg.Brush.Size, cfg.Brush.Shape),
		appstate.WithHistorySize(cfg.HistorySize),
		appstate.WithOutput(defaultOutput(cfg.SaveDir)),
		appstate.WithTheme(r.activeTheme),
		appstate.WithNotifier(r.notifier),
	}
	return appstate.New(append(base, opts...)...)
}

func defaultOutput(saveDir string) string {
	saveDir = strings.TrimSpace(saveDir)
	if saveDir == "" {
		return appstate.DefaultOutput
	}
	if strings.HasPrefix(saveDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			saveDir = filepath.Join(home, saveDir[2:])
		}
	}
	return filepath.Join(saveDir, appstate.DefaultOutput)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
