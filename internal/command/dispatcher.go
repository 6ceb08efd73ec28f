package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/logger"
	"github.com/dworshak/dworshak/internal/ui"
)

// Exit statuses returned by Dispatch.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// Confirmer answers the confirmation gate. False means declined.
type Confirmer interface {
	Confirm(question string) bool
}

// Dispatcher runs handlers under one policy: confirmation gate, result
// rendering, and mapping of failures to exit statuses.
type Dispatcher struct {
	Out       io.Writer
	Err       io.Writer
	Confirmer Confirmer
	Log       *logger.Logger
	// Debug adds the full error chain to failure output.
	Debug bool
}

type outcome struct {
	result Result
	err    error
}

// Dispatch runs spec with args and returns the process exit status.
func (d *Dispatcher) Dispatch(ctx context.Context, spec Spec, args Args) int {
	log := d.logger().With("dispatch")
	styles := ui.New(d.errWriter())

	if spec.NeedsConfirmation && !args.Bool(YesParam) {
		confirmed, err := d.confirm(ctx, spec.Prompt(args))
		if err != nil {
			return d.fail(spec, err, styles)
		}
		if !confirmed {
			log.Info().Str("command", spec.Name).Msg("Confirmation declined")
			d.errorf("%s\n", styles.Warning("Operation cancelled."))
			return ExitOK
		}
	}

	start := time.Now()
	o := d.invoke(ctx, spec, args)
	log.Debug().Str("command", spec.Name).Dur("took_ms", time.Since(start)).Err(o.err).Msg("Handler finished")

	if o.err != nil {
		return d.fail(spec, o.err, styles)
	}
	if err := d.render(o.result); err != nil {
		return d.fail(spec, err, styles)
	}
	return ExitOK
}

// confirm asks the question unless ctx ends first.
func (d *Dispatcher) confirm(ctx context.Context, question string) (bool, error) {
	if d.Confirmer == nil {
		return false, nil
	}
	answer := make(chan bool, 1)
	go func() { answer <- d.Confirmer.Confirm(question) }()

	select {
	case ok := <-answer:
		return ok, nil
	case <-ctx.Done():
		return false, fmt.Errorf("confirmation: %w", derrors.ErrInterrupted)
	}
}

// invoke runs the handler, converting a panic into an error and giving up
// on the handler once ctx is cancelled.
func (d *Dispatcher) invoke(ctx context.Context, spec Spec, args Args) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{err: fmt.Errorf("%s: %w", spec.Name, derrors.ErrInterrupted)}
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: derrors.NewPanicError(r, debug.Stack())}
			}
		}()
		result, err := spec.Handler(ctx, args)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o
	case <-ctx.Done():
		return outcome{err: fmt.Errorf("%s: %w", spec.Name, derrors.ErrInterrupted)}
	}
}

func (d *Dispatcher) render(result Result) error {
	switch r := result.(type) {
	case nil, None:
		return nil
	case Status:
		d.logger().Debug().Str("status", fmt.Sprint(r.Value)).Msg("Handler status")
		return nil
	case Rows:
		for _, row := range r {
			if _, err := fmt.Fprintln(d.outWriter(), strings.Join(row, RowSeparator)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}
}

func (d *Dispatcher) fail(spec Spec, err error, styles *ui.Styles) int {
	if isInterrupt(err) {
		d.errorf("Interrupted.\n")
		return ExitInterrupted
	}

	d.logger().Debug().Str("command", spec.Name).Err(err).Msg("Command failed")
	d.errorf("%s\n", styles.Failure("Error: "+err.Error()))
	if d.Debug {
		d.errorf("%s\n%s", styles.Subtle("Traceback:"), derrors.Trace(err))
	}
	return ExitFailure
}

func isInterrupt(err error) bool {
	return errors.Is(err, derrors.ErrInterrupted) || errors.Is(err, context.Canceled)
}

func (d *Dispatcher) errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(d.errWriter(), format, a...)
}

func (d *Dispatcher) outWriter() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Dispatcher) errWriter() io.Writer {
	if d.Err == nil {
		return os.Stderr
	}
	return d.Err
}

func (d *Dispatcher) logger() *logger.Logger {
	if d.Log == nil {
		return logger.Discard()
	}
	return d.Log
}
