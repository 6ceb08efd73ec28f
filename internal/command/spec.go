// Package command describes CLI operations independently of any argument
// parser. A Spec lists typed parameters and a handler; a Dispatcher applies
// the confirmation, error and exit-code policy around every handler call.
// Front ends only translate their parsed flags into Args.
package command

import (
	"context"
	"fmt"
	"strings"
)

// YesParam is the flag that skips the confirmation gate.
const YesParam = "yes"

// Kind is the type of a parameter value.
type Kind int

const (
	// String parameters carry text.
	String Kind = iota
	// Bool parameters are switches.
	Bool
)

// Param declares one handler parameter.
type Param struct {
	Name       string
	Usage      string
	Kind       Kind
	Positional bool
	Aliases    []string
	// Default applies to String parameters, DefaultBool to Bool ones.
	Default     string
	DefaultBool bool
	// Negatable bools also accept --no-<name>.
	Negatable bool
	// Choices restricts String values when non-empty.
	Choices []string
}

// Arg declares a required positional string.
func Arg(name, usage string) Param {
	return Param{Name: name, Usage: usage, Kind: String, Positional: true}
}

// StringOption declares a --name string option.
func StringOption(name, usage, def string, aliases ...string) Param {
	return Param{Name: name, Usage: usage, Kind: String, Default: def, Aliases: aliases}
}

// BoolOption declares a --name switch.
func BoolOption(name, usage string, def bool, aliases ...string) Param {
	return Param{Name: name, Usage: usage, Kind: Bool, DefaultBool: def, Aliases: aliases}
}

// Handler runs a command. It writes user-facing output itself and returns
// a Result for the dispatcher to render.
type Handler func(ctx context.Context, args Args) (Result, error)

// Spec is the declarative description of one command.
type Spec struct {
	Name              string
	Usage             string
	Params            []Param
	Handler           Handler
	NeedsConfirmation bool
	// ConfirmPrompt builds the question; nil uses a generic one.
	ConfirmPrompt func(Args) string
}

// Positionals returns the positional parameters in declaration order.
func (s Spec) Positionals() []Param {
	var out []Param
	for _, p := range s.Params {
		if p.Positional {
			out = append(out, p)
		}
	}
	return out
}

// Options returns the named parameters in declaration order.
func (s Spec) Options() []Param {
	var out []Param
	for _, p := range s.Params {
		if !p.Positional {
			out = append(out, p)
		}
	}
	return out
}

// ArgsUsage renders the positional synopsis, e.g. "<service> <item>".
func (s Spec) ArgsUsage() string {
	names := make([]string, 0, len(s.Params))
	for _, p := range s.Positionals() {
		names = append(names, "<"+p.Name+">")
	}
	return strings.Join(names, " ")
}

// Prompt returns the confirmation question for args.
func (s Spec) Prompt(args Args) string {
	if s.ConfirmPrompt != nil {
		return s.ConfirmPrompt(args)
	}
	return fmt.Sprintf("Are you sure you want to run '%s'?", s.Name)
}

// Defaults returns Args populated with every parameter's default.
func (s Spec) Defaults() Args {
	args := NewArgs()
	for _, p := range s.Params {
		switch p.Kind {
		case Bool:
			args.Bools[p.Name] = p.DefaultBool
		default:
			args.Strings[p.Name] = p.Default
		}
	}
	return args
}

// Bind builds Args from positional values and named overrides. Unknown
// names, missing positionals and values outside Choices are errors.
func (s Spec) Bind(positional []string, strs map[string]string, bools map[string]bool) (Args, error) {
	args := s.Defaults()

	want := s.Positionals()
	if len(positional) != len(want) {
		return args, fmt.Errorf("%s expects %d argument(s) %s, got %d", s.Name, len(want), s.ArgsUsage(), len(positional))
	}
	for i, p := range want {
		args.Strings[p.Name] = positional[i]
	}

	index := make(map[string]Param, len(s.Params))
	for _, p := range s.Params {
		index[p.Name] = p
	}
	for name, value := range strs {
		p, ok := index[name]
		if !ok || p.Kind != String || p.Positional {
			return args, fmt.Errorf("%s has no string option %q", s.Name, name)
		}
		if len(p.Choices) > 0 && !contains(p.Choices, value) {
			return args, fmt.Errorf("invalid value %q for --%s (want one of %s)", value, name, strings.Join(p.Choices, ", "))
		}
		args.Strings[name] = value
	}
	for name, value := range bools {
		p, ok := index[name]
		if !ok || p.Kind != Bool {
			return args, fmt.Errorf("%s has no switch %q", s.Name, name)
		}
		args.Bools[name] = value
	}
	return args, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Args holds bound parameter values by name.
type Args struct {
	Strings map[string]string
	Bools   map[string]bool
}

// NewArgs returns empty Args.
func NewArgs() Args {
	return Args{Strings: map[string]string{}, Bools: map[string]bool{}}
}

// String returns the named string value, "" when unset.
func (a Args) String(name string) string {
	return a.Strings[name]
}

// Bool returns the named switch, false when unset.
func (a Args) Bool(name string) bool {
	return a.Bools[name]
}
