package cli

import (
	"fmt"

	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/store"
)

// SetParams contains parameters for the Set command
type SetParams struct {
	Path      string
	Service   string
	Item      string
	Value     string
	Overwrite bool
}

// Set stores a value and prints what is stored afterwards. The store does
// not report save failures, so the value is read back: a missing value, or
// one that differs from what was just written, is an error.
func (a *App) Set(params SetParams) (store.SetOutcome, error) {
	if err := checkKey("set", params.Service, params.Item); err != nil {
		return store.SetSkipped, err
	}

	s := a.open(params.Path)
	outcome := s.Set(params.Service, params.Item, params.Value, params.Overwrite)

	stored, ok := s.Get(params.Service, params.Item)
	if !ok {
		return outcome, derrors.NewReadBackError(params.Service, params.Item, "failed to read back stored value")
	}
	if outcome == store.SetWritten && stored != params.Value {
		return outcome, derrors.NewReadBackError(params.Service, params.Item,
			fmt.Sprintf("stored value for %s/%s does not match what was written", params.Service, params.Item))
	}

	if outcome == store.SetSkipped {
		a.notice(a.styles().Warning(fmt.Sprintf("Kept existing value for %s/%s (overwrite disabled)", params.Service, params.Item)))
	}
	return outcome, a.printValue(stored)
}
