package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dworshak/dworshak/internal/command"
	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/logger"
	"github.com/dworshak/dworshak/internal/store"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &App{
		Out:         out,
		Err:         errOut,
		Log:         logger.New("error", errOut),
		DefaultPath: filepath.Join(t.TempDir(), ".dworshak", "config.json"),
	}, out, errOut
}

func TestGet(t *testing.T) {
	app, out, _ := newTestApp(t)
	_, err := app.Set(SetParams{Service: "Maxson", Item: "port", Value: "8080", Overwrite: true})
	require.NoError(t, err)
	out.Reset()

	require.NoError(t, app.Get(GetParams{Service: "Maxson", Item: "port"}))
	assert.Equal(t, "8080\n", out.String())
}

func TestGet_AbsentPrintsNothing(t *testing.T) {
	app, out, errOut := newTestApp(t)

	require.NoError(t, app.Get(GetParams{Service: "Maxson", Item: "port"}))
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestGet_EmptyKeys(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Get(GetParams{Service: "", Item: "port"})
	var usage *derrors.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "get", usage.Command)

	err = app.Get(GetParams{Service: "Maxson", Item: ""})
	assert.ErrorAs(t, err, &usage)
}

func TestSet_PrintsReadBack(t *testing.T) {
	app, out, errOut := newTestApp(t)

	outcome, err := app.Set(SetParams{Service: "Maxson", Item: "port", Value: "8080", Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, store.SetWritten, outcome)
	assert.Equal(t, "8080\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestSet_NoOverwriteKeepsExisting(t *testing.T) {
	app, out, errOut := newTestApp(t)
	_, err := app.Set(SetParams{Service: "svc", Item: "key", Value: "v1", Overwrite: true})
	require.NoError(t, err)
	out.Reset()

	outcome, err := app.Set(SetParams{Service: "svc", Item: "key", Value: "v2", Overwrite: false})
	require.NoError(t, err)
	assert.Equal(t, store.SetSkipped, outcome)
	assert.Equal(t, "v1\n", out.String())
	assert.Contains(t, errOut.String(), "Kept existing value for svc/key")
}

func TestSet_SaveFailureSurfacesAsReadBackError(t *testing.T) {
	app, out, _ := newTestApp(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	app.DefaultPath = filepath.Join(blocker, "config.json")

	_, err := app.Set(SetParams{Service: "svc", Item: "key", Value: "v", Overwrite: true})
	var readBack *derrors.ReadBackError
	require.ErrorAs(t, err, &readBack)
	assert.Equal(t, "failed to read back stored value", err.Error())
	assert.Empty(t, out.String())
}

func TestRemove(t *testing.T) {
	app, out, errOut := newTestApp(t)
	_, err := app.Set(SetParams{Service: "Maxson", Item: "port", Value: "8080", Overwrite: true})
	require.NoError(t, err)
	out.Reset()

	deleted, err := app.Remove(RemoveParams{Service: "Maxson", Item: "port"})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Removed value Maxson/port")

	deleted, err = app.Remove(RemoveParams{Service: "Maxson", Item: "port"})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Contains(t, errOut.String(), "No value found for Maxson/port")
}

func TestRemove_FailOnMissing(t *testing.T) {
	app, _, _ := newTestApp(t)

	deleted, err := app.Remove(RemoveParams{Service: "Maxson", Item: "port", Fail: true})
	assert.False(t, deleted)
	var notFound *derrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No value found for Maxson/port", err.Error())
}

func TestList(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, e := range [][3]string{{"B", "2", "b"}, {"A", "3", "c"}, {"A", "1", "a"}} {
		_, err := app.Set(SetParams{Service: e[0], Item: e[1], Value: e[2], Overwrite: true})
		require.NoError(t, err)
	}

	assert.Equal(t, [][]string{{"A", "1"}, {"A", "3"}, {"B", "2"}}, app.List(ListParams{}))
	assert.Equal(t, [][]string{{"A", "1", "a"}, {"A", "3", "c"}, {"B", "2", "b"}}, app.List(ListParams{Values: true}))
}

func TestList_Empty(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Empty(t, app.List(ListParams{}))
}

func TestExport(t *testing.T) {
	app, out, _ := newTestApp(t)
	_, err := app.Set(SetParams{Service: "Maxson", Item: "port", Value: "8080", Overwrite: true})
	require.NoError(t, err)

	tests := []struct {
		format string
		want   string
	}{
		{format: "", want: "{\n    \"Maxson\": {\n        \"port\": \"8080\"\n    }\n}\n"},
		{format: FormatJSON, want: "{\n    \"Maxson\": {\n        \"port\": \"8080\"\n    }\n}\n"},
		{format: FormatYAML, want: "Maxson:\n  port: \"8080\"\n"},
	}
	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			out.Reset()
			require.NoError(t, app.Export(ExportParams{Format: tt.format}))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestExport_Empty(t *testing.T) {
	app, out, _ := newTestApp(t)

	require.NoError(t, app.Export(ExportParams{Format: FormatJSON}))
	assert.Equal(t, "{}\n", out.String())

	out.Reset()
	require.NoError(t, app.Export(ExportParams{Format: FormatYAML}))
	assert.Equal(t, "{}\n", out.String())
}

func TestExport_UnsupportedFormat(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Export(ExportParams{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestValidate(t *testing.T) {
	app, _, errOut := newTestApp(t)

	require.NoError(t, app.Validate(ValidateParams{}))
	assert.Contains(t, errOut.String(), "No store file at")

	_, err := app.Set(SetParams{Service: "Maxson", Item: "port", Value: "8080", Overwrite: true})
	require.NoError(t, err)
	errOut.Reset()
	require.NoError(t, app.Validate(ValidateParams{}))
	assert.Contains(t, errOut.String(), "Store is valid")

	require.NoError(t, os.WriteFile(app.DefaultPath, []byte(`{"Maxson": {"port": 8080}}`), 0600))
	errOut.Reset()
	err = app.Validate(ValidateParams{})
	var validation *derrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "found 1 error(s)")
	assert.Contains(t, errOut.String(), "1. [Maxson.port]")
}

func TestPath(t *testing.T) {
	app, out, _ := newTestApp(t)

	require.NoError(t, app.Path(PathParams{}))
	assert.Equal(t, app.DefaultPath+"\n", out.String())

	custom := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(custom, []byte("{}"), 0600))
	out.Reset()
	require.NoError(t, app.Path(PathParams{Path: custom}))
	assert.Equal(t, custom+"\n", out.String())
}

func TestCommands_Table(t *testing.T) {
	app, _, _ := newTestApp(t)
	r := app.Commands()

	assert.Equal(t, []string{"get", "set", "remove", "list", "export", "validate", "path"}, r.Names())

	for _, name := range r.Names() {
		spec, _ := r.Lookup(name)
		assert.Equal(t, name == "remove", spec.NeedsConfirmation, name)
		assert.NotEmpty(t, spec.Usage, name)
	}

	set, _ := r.Lookup("set")
	assert.Equal(t, "<service> <item> <value>", set.ArgsUsage())
	assert.True(t, set.Defaults().Bool("overwrite"))

	remove, _ := r.Lookup("remove")
	args, err := remove.Bind([]string{"Maxson", "port"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to remove Maxson/port?", remove.Prompt(args))
}

func TestCommands_DispatchRoundTrip(t *testing.T) {
	app, out, errOut := newTestApp(t)
	r := app.Commands()
	d := &command.Dispatcher{Out: out, Err: errOut}
	ctx := context.Background()

	run := func(name string, positional []string, bools map[string]bool) int {
		spec, ok := r.Lookup(name)
		require.True(t, ok)
		args, err := spec.Bind(positional, nil, bools)
		require.NoError(t, err)
		return d.Dispatch(ctx, spec, args)
	}

	assert.Equal(t, 0, run("set", []string{"Maxson", "port", "8080"}, nil))
	assert.Equal(t, 0, run("set", []string{"Maxson", "host", "db"}, nil))
	assert.Equal(t, 0, run("get", []string{"Maxson", "port"}, nil))
	assert.Equal(t, "8080\ndb\n8080\n", out.String())

	out.Reset()
	assert.Equal(t, 0, run("list", nil, nil))
	assert.Equal(t, "Maxson  host\nMaxson  port\n", out.String())

	// No confirmer: remove without --yes is declined.
	assert.Equal(t, 0, run("remove", []string{"Maxson", "port"}, nil))
	assert.Contains(t, errOut.String(), "Operation cancelled.")

	assert.Equal(t, 0, run("remove", []string{"Maxson", "port"}, map[string]bool{"yes": true}))
	assert.Equal(t, 1, run("remove", []string{"Maxson", "port"}, map[string]bool{"yes": true, "fail": true}))
	assert.Contains(t, errOut.String(), "Error: No value found for Maxson/port")
}

func TestCommands_HandlerErrorsAreTyped(t *testing.T) {
	app, _, _ := newTestApp(t)
	spec, _ := app.Commands().Lookup("get")

	args, err := spec.Bind([]string{"", "port"}, nil, nil)
	require.NoError(t, err)
	_, err = spec.Handler(context.Background(), args)

	var usage *derrors.UsageError
	assert.True(t, errors.As(err, &usage))
}
