package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pixelpad/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.stdout, c.currentConfig().String())
		return nil
	case "path":
		loader := config.NewLoader(version, configPathOverride)
		path := loader.GetConfigPath()
		if path == "" {
			path = loader.DefaultPath() + " (not created yet)"
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	case "save":
		return c.runSave(args[1:])
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) currentConfig() *config.Config {
	if c.config == nil {
		return config.New()
	}
	return c.config
}

func (c *configCmd) runSave(args []string) error {
	loader := config.NewLoader(version, configPathOverride)
	path := loader.GetConfigPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = loader.DefaultPath()
	}
	if err := loader.Save(c.currentConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
