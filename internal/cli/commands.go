package cli

import (
	"context"

	"github.com/dworshak/dworshak/internal/command"
)

// Parameter names shared between commands
const (
	paramPath      = "path"
	paramService   = "service"
	paramItem      = "item"
	paramValue     = "value"
	paramOverwrite = "overwrite"
	paramFail      = "fail"
	paramValues    = "values"
	paramFormat    = "format"
)

// PathParams contains parameters for the Path command
type PathParams struct {
	Path string
}

// Path prints the store location a command with the same --path would use.
func (a *App) Path(params PathParams) error {
	return a.printValue(a.open(params.Path).Path())
}

// Commands returns the command table in display order.
func (a *App) Commands() *command.Registry {
	path := command.StringOption(paramPath, "Custom config file path (used only if it exists and ends in .json)", "", "p")
	service := command.Arg(paramService, "The service name (e.g., Maxson)")
	item := command.Arg(paramItem, "The item key (e.g., port)")

	overwrite := command.BoolOption(paramOverwrite, "Replace an existing value", true)
	overwrite.Negatable = true

	format := command.StringOption(paramFormat, "Output format: json or yaml", FormatJSON, "f")
	format.Choices = []string{FormatJSON, FormatYAML}

	return command.NewRegistry(
		command.Spec{
			Name:   "get",
			Usage:  "Retrieve a configuration value",
			Params: []command.Param{service, item, path},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				return command.None{}, a.Get(GetParams{
					Path:    args.String(paramPath),
					Service: args.String(paramService),
					Item:    args.String(paramItem),
				})
			},
		},
		command.Spec{
			Name:  "set",
			Usage: "Store a configuration value",
			Params: []command.Param{
				service, item,
				command.Arg(paramValue, "The value to store"),
				path, overwrite,
			},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				outcome, err := a.Set(SetParams{
					Path:      args.String(paramPath),
					Service:   args.String(paramService),
					Item:      args.String(paramItem),
					Value:     args.String(paramValue),
					Overwrite: args.Bool(paramOverwrite),
				})
				return command.Status{Value: outcome.String()}, err
			},
		},
		command.Spec{
			Name:  "remove",
			Usage: "Remove a configuration value",
			Params: []command.Param{
				service, item, path,
				command.BoolOption(paramFail, "Fail if the value does not exist", false),
				command.BoolOption(command.YesParam, "Skip confirmation prompt (useful in scripts or automation)", false, "y"),
			},
			NeedsConfirmation: true,
			ConfirmPrompt: func(args command.Args) string {
				return "Are you sure you want to remove " + args.String(paramService) + "/" + args.String(paramItem) + "?"
			},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				deleted, err := a.Remove(RemoveParams{
					Path:    args.String(paramPath),
					Service: args.String(paramService),
					Item:    args.String(paramItem),
					Fail:    args.Bool(paramFail),
				})
				return command.Status{Value: deleted}, err
			},
		},
		command.Spec{
			Name:  "list",
			Usage: "List all stored configuration values",
			Params: []command.Param{
				path,
				command.BoolOption(paramValues, "Include stored values", false),
			},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				return command.Rows(a.List(ListParams{
					Path:   args.String(paramPath),
					Values: args.Bool(paramValues),
				})), nil
			},
		},
		command.Spec{
			Name:   "export",
			Usage:  "Print the whole store as JSON or YAML",
			Params: []command.Param{path, format},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				return command.None{}, a.Export(ExportParams{
					Path:   args.String(paramPath),
					Format: args.String(paramFormat),
				})
			},
		},
		command.Spec{
			Name:   "validate",
			Usage:  "Check the store file against the document schema",
			Params: []command.Param{path},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				return command.None{}, a.Validate(ValidateParams{Path: args.String(paramPath)})
			},
		},
		command.Spec{
			Name:   "path",
			Usage:  "Print the location of the store file",
			Params: []command.Param{path},
			Handler: func(_ context.Context, args command.Args) (command.Result, error) {
				return command.None{}, a.Path(PathParams{Path: args.String(paramPath)})
			},
		},
	)
}
