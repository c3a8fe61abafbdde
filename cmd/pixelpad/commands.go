package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/pixelpad/internal/appstate"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// runCommands executes each command against state, stopping at the first
// error.
func runCommands(state *appstate.AppState, commands []string, out io.Writer) error {
	for i, line := range commands {
		if err := state.ExecLine(line, out); err != nil {
			return fmt.Errorf("-e #%d %q: %w", i+1, line, err)
		}
	}
	return nil
}
