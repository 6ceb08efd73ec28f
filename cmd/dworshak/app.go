package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	dcli "github.com/dworshak/dworshak/internal/cli"
	"github.com/dworshak/dworshak/internal/command"
	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/logger"
	"github.com/dworshak/dworshak/internal/prompt"
	"github.com/dworshak/dworshak/internal/settings"
	"github.com/dworshak/dworshak/pkg/version"
)

// run parses argv, executes one command and returns the exit status.
func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	prefs, err := settings.Discover()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return command.ExitFailure
	}

	exitCode := command.ExitOK
	root := newRootCommand(prefs, stdin, stdout, stderr, &exitCode)
	if err := root.Run(ctx, argv); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return command.ExitFailure
	}
	return exitCode
}

// newRootCommand builds one urfave subcommand per registered spec. The
// dispatcher's exit status is written to exitCode.
func newRootCommand(prefs *settings.Settings, stdin io.Reader, stdout, stderr io.Writer, exitCode *int) *cli.Command {
	root := &cli.Command{
		Name:                  "dworshak",
		Usage:                 "Store and retrieve plaintext configuration values in JSON",
		Version:               version.String(),
		EnableShellCompletion: true,
		Reader:                stdin,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   prefs.LogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("DWORSHAK_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Shorthand for --log-level info",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Debug logging and full error traces",
				Sources: cli.EnvVars("DWORSHAK_DEBUG"),
			},
		},
	}

	// Specs are only read for their metadata here; each action builds its
	// own App once the global flags are known.
	for _, spec := range (&dcli.App{}).Commands().Specs() {
		name := spec.Name
		root.Commands = append(root.Commands, &cli.Command{
			Name:      spec.Name,
			Usage:     spec.Usage,
			ArgsUsage: spec.ArgsUsage(),
			Flags:     flagsFor(spec),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				log := logger.New(logLevel(cmd), stderr)
				app := &dcli.App{
					Out:         stdout,
					Err:         stderr,
					Log:         log,
					DefaultPath: prefs.DefaultPath,
				}
				spec, _ := app.Commands().Lookup(name)

				args, err := bindArgs(spec, cmd)
				if err != nil {
					return derrors.NewUsageError(name, err.Error())
				}

				d := &command.Dispatcher{
					Out:       stdout,
					Err:       stderr,
					Confirmer: prompt.New(stdin, stderr),
					Log:       log,
					Debug:     cmd.Bool("debug"),
				}
				*exitCode = d.Dispatch(ctx, spec, args)
				return nil
			},
		})
	}
	return root
}

func logLevel(cmd *cli.Command) string {
	switch {
	case cmd.Bool("debug"):
		return "debug"
	case cmd.Bool("verbose"):
		return "info"
	default:
		return cmd.String("log-level")
	}
}

// flagsFor maps a spec's named parameters to urfave flags.
func flagsFor(spec command.Spec) []cli.Flag {
	var flags []cli.Flag
	for _, p := range spec.Options() {
		switch p.Kind {
		case command.Bool:
			flags = append(flags, &cli.BoolFlag{
				Name:    p.Name,
				Aliases: p.Aliases,
				Usage:   p.Usage,
				Value:   p.DefaultBool,
			})
			if p.Negatable {
				flags = append(flags, &cli.BoolFlag{
					Name:  "no-" + p.Name,
					Usage: "Negates --" + p.Name,
				})
			}
		default:
			flags = append(flags, &cli.StringFlag{
				Name:    p.Name,
				Aliases: p.Aliases,
				Usage:   p.Usage,
				Value:   p.Default,
			})
		}
	}
	return flags
}

// bindArgs reads the parsed urfave values back into command.Args.
func bindArgs(spec command.Spec, cmd *cli.Command) (command.Args, error) {
	strs := map[string]string{}
	bools := map[string]bool{}
	for _, p := range spec.Options() {
		switch p.Kind {
		case command.Bool:
			value := cmd.Bool(p.Name)
			if p.Negatable && cmd.Bool("no-"+p.Name) {
				value = false
			}
			bools[p.Name] = value
		default:
			strs[p.Name] = cmd.String(p.Name)
		}
	}
	return spec.Bind(cmd.Args().Slice(), strs, bools)
}
