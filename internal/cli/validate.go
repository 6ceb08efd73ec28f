package cli

import (
	"fmt"

	"github.com/dworshak/dworshak/internal/derrors"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Path string
}

// Validate checks the store file strictly against the document schema.
// Problems are listed on the error stream and reported as a ValidationError.
func (a *App) Validate(params ValidateParams) error {
	s := a.open(params.Path)

	result, err := s.Validate()
	if err != nil {
		return err
	}

	styles := a.styles()
	if !result.Exists {
		a.notice(styles.Warning(fmt.Sprintf("No store file at %s", result.Path)))
		return nil
	}
	if result.Valid {
		a.notice(styles.Success(fmt.Sprintf("Store is valid: %s", result.Path)))
		return nil
	}

	a.notice(fmt.Sprintf("Store has errors: %s", result.Path))
	for i, issue := range result.Issues {
		a.notice(fmt.Sprintf("%d. [%s] %s", i+1, issue.Field, issue.Message))
	}
	return derrors.NewValidationError(result.Path, fmt.Sprintf("validation failed: found %d error(s)", len(result.Issues)), nil)
}
