//go:build cgo
// +build cgo

package main

import (
	"fmt"
	"os"

	"github.com/appengine-ltd/minimap/internal/gui"
	"github.com/appengine-ltd/minimap/internal/ui"
)

func main() {
	opts := parseFlags()
	cfg, path, start, err := run(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !start {
		return
	}

	if opts.classic {
		err = ui.NewApp(ui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			ConfigPath: path,
			Config:     cfg,
		}).Run()
	} else {
		err = gui.NewApp(gui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			ConfigPath: path,
			Config:     cfg,
		}).Run()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
