package cli

import (
	"fmt"

	"github.com/dworshak/dworshak/internal/derrors"
)

// RemoveParams contains parameters for the Remove command
type RemoveParams struct {
	Path    string
	Service string
	Item    string
	// Fail turns a missing entry into an error.
	Fail bool
}

// Remove deletes (service, item) and reports whether it was stored.
func (a *App) Remove(params RemoveParams) (bool, error) {
	if err := checkKey("remove", params.Service, params.Item); err != nil {
		return false, err
	}

	s := a.open(params.Path)
	if !s.Remove(params.Service, params.Item) {
		if params.Fail {
			return false, derrors.NewNotFoundError(params.Service, params.Item)
		}
		a.notice(a.styles().Warning(fmt.Sprintf("No value found for %s/%s", params.Service, params.Item)))
		return false, nil
	}

	if _, still := s.Get(params.Service, params.Item); still {
		return true, derrors.NewReadBackError(params.Service, params.Item,
			fmt.Sprintf("value for %s/%s is still stored after removal", params.Service, params.Item))
	}

	a.notice(a.styles().Success(fmt.Sprintf("Removed value %s/%s", params.Service, params.Item)))
	return true, nil
}
