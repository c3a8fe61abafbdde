package appstate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/theme"
	"github.com/example/pixelpad/internal/tool"
)

// ErrUnknownCommand is returned for a script line naming no known command.
var ErrUnknownCommand = errors.New("unknown command")

// scriptCommand is one line-oriented command understood by Exec.
type scriptCommand struct {
	args  int // -1 accepts any number of arguments
	usage string
	run   func(a *AppState, args []string, out io.Writer) error
}

var scriptCommands map[string]scriptCommand

func init() {
	pointer := func(fn func(*tool.Dispatcher, tool.Pointer)) func(*AppState, []string, io.Writer) error {
		return func(a *AppState, args []string, _ io.Writer) error {
			p, err := parsePointer(args)
			if err != nil {
				return err
			}
			fn(a.dispatcher, p)
			return nil
		}
	}
	scriptCommands = map[string]scriptCommand{
		"down":  {2, "down X Y", pointer((*tool.Dispatcher).PointerDown)},
		"move":  {2, "move X Y", pointer((*tool.Dispatcher).PointerMove)},
		"up":    {2, "up X Y", pointer((*tool.Dispatcher).PointerUp)},
		"leave": {2, "leave X Y", pointer((*tool.Dispatcher).PointerLeave)},
		"enter": {2, "enter X Y", pointer((*tool.Dispatcher).PointerEnter)},
		"line": {4, "line X0 Y0 X1 Y1", func(a *AppState, args []string, _ io.Writer) error {
			from, err := parsePointer(args[:2])
			if err != nil {
				return err
			}
			to, err := parsePointer(args[2:])
			if err != nil {
				return err
			}
			a.dispatcher.PointerDown(from)
			a.dispatcher.PointerMove(to)
			a.dispatcher.PointerUp(to)
			return nil
		}},
		"sample": {2, "sample X Y", func(a *AppState, args []string, out io.Writer) error {
			p, err := parsePointer(args)
			if err != nil {
				return err
			}
			col, ok := a.canvas.SampleColor(p.X, p.Y)
			if !ok {
				return fmt.Errorf("(%d,%d) is outside the %dx%d canvas", p.X, p.Y, a.canvas.Width(), a.canvas.Height())
			}
			fmt.Fprintln(out, theme.Hex(col))
			return nil
		}},
		"key": {1, "key R", func(a *AppState, args []string, _ io.Writer) error {
			r := []rune(args[0])
			if len(r) != 1 {
				return fmt.Errorf("key expects a single character, got %q", args[0])
			}
			if !a.HandleKey(r[0]) {
				return fmt.Errorf("key %q is not bound", args[0])
			}
			return nil
		}},
		"brush": {0, "brush", func(a *AppState, _ []string, _ io.Writer) error {
			a.SwitchToBrush()
			return nil
		}},
		"picker": {0, "picker", func(a *AppState, _ []string, _ io.Writer) error {
			a.SwitchToColorPicker()
			return nil
		}},
		"color": {1, "color #RRGGBB|NAME", func(a *AppState, args []string, _ io.Writer) error {
			return a.SetBrushColor(args[0])
		}},
		"size": {1, "size N", func(a *AppState, args []string, out io.Writer) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid size %q", args[0])
			}
			if got := a.SetBrushSize(n); got != n {
				fmt.Fprintf(out, "size clamped to %d\n", got)
			}
			return nil
		}},
		"shape": {1, "shape square|round", func(a *AppState, args []string, _ io.Writer) error {
			s, err := surface.ParseShape(args[0])
			if err != nil {
				return err
			}
			a.SetBrushShape(s)
			return nil
		}},
		"undo": {0, "undo", func(a *AppState, _ []string, _ io.Writer) error {
			a.Undo()
			return nil
		}},
		"redo": {0, "redo", func(a *AppState, _ []string, _ io.Writer) error {
			a.Redo()
			return nil
		}},
		"clear": {0, "clear", func(a *AppState, _ []string, out io.Writer) error {
			if !a.ClearCanvas(nil) {
				fmt.Fprintln(out, "clear cancelled")
			}
			return nil
		}},
		"width": {1, "width N", func(a *AppState, args []string, out io.Writer) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid width %q", args[0])
			}
			if !a.SetCanvasWidth(n, nil) {
				fmt.Fprintln(out, "resize cancelled")
			}
			return nil
		}},
		"height": {1, "height N", func(a *AppState, args []string, out io.Writer) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid height %q", args[0])
			}
			if !a.SetCanvasHeight(n, nil) {
				fmt.Fprintln(out, "resize cancelled")
			}
			return nil
		}},
		"save": {-1, "save [PATH]", func(a *AppState, args []string, out io.Writer) error {
			path, err := a.Save(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %s\n", path)
			return nil
		}},
		"copy": {0, "copy", func(a *AppState, _ []string, out io.Writer) error {
			if err := a.Copy(); err != nil {
				return err
			}
			fmt.Fprintln(out, "image copied to clipboard")
			return nil
		}},
		"status": {0, "status", func(a *AppState, _ []string, out io.Writer) error {
			fmt.Fprintln(out, a.Status())
			return nil
		}},
		"help": {0, "help", func(_ *AppState, _ []string, out io.Writer) error {
			for _, u := range ScriptUsage() {
				fmt.Fprintln(out, u)
			}
			return nil
		}},
	}
}

// ScriptUsage lists the usage line of every script command, sorted.
func ScriptUsage() []string {
	out := make([]string, 0, len(scriptCommands))
	for _, c := range scriptCommands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return out
}

func parsePointer(args []string) (tool.Pointer, error) {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return tool.Pointer{}, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return tool.Pointer{}, fmt.Errorf("invalid y %q", args[1])
	}
	return tool.Pointer{X: x, Y: y}, nil
}

// ExecLine runs a single script command. Blank lines and lines starting
// with # are ignored.
func (a *AppState) ExecLine(line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	cmd, ok := scriptCommands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if cmd.args >= 0 && len(args) != cmd.args {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd.run(a, args, out)
}

// Exec runs every line of r as a script command and stops at the first
// error, which carries the line number.
func (a *AppState) Exec(r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := a.ExecLine(scanner.Text(), out); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}
