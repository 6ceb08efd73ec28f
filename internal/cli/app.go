// Package cli implements the Dworshak commands as plain functions over the
// store. Each command has a Params struct; Commands exposes them as a
// command registry for whichever front end parses the arguments.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/logger"
	"github.com/dworshak/dworshak/internal/store"
	"github.com/dworshak/dworshak/internal/ui"
)

// App holds the streams and configuration shared by every command.
// Out receives only result values; notices go to Err.
type App struct {
	Out         io.Writer
	Err         io.Writer
	Log         *logger.Logger
	DefaultPath string
}

// open builds a store for one command invocation.
func (a *App) open(path string) *store.Store {
	return store.New(path, store.Config{
		DefaultPath: a.DefaultPath,
		Logger:      a.logger(),
	})
}

// checkKey rejects empty service or item names.
func checkKey(command, service, item string) error {
	if service == "" {
		return derrors.NewUsageError(command, "service must not be empty")
	}
	if item == "" {
		return derrors.NewUsageError(command, "item must not be empty")
	}
	return nil
}

// printValue writes one result line to Out.
func (a *App) printValue(value string) error {
	if _, err := fmt.Fprintln(a.out(), value); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// notice writes a status line to Err.
func (a *App) notice(text string) {
	_, _ = fmt.Fprintln(a.errOut(), text)
}

func (a *App) styles() *ui.Styles {
	return ui.New(a.errOut())
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) errOut() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

func (a *App) logger() *logger.Logger {
	if a.Log == nil {
		return logger.Discard()
	}
	return a.Log
}
