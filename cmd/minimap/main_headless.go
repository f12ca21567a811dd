//go:build !cgo
// +build !cgo

package main

import (
	"fmt"
	"os"

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

	// Without cgo there is no window; the terminal frontend is the only one.
	err = ui.NewApp(ui.AppConfig{
		Version:    version,
		Commit:     commit,
		BuildDate:  date,
		ConfigPath: path,
		Config:     cfg,
	}).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
