package cli

// GetParams contains parameters for the Get command
type GetParams struct {
	Path    string
	Service string
	Item    string
}

// Get prints the value stored at (service, item). An absent value prints
// nothing and is not an error.
func (a *App) Get(params GetParams) error {
	if err := checkKey("get", params.Service, params.Item); err != nil {
		return err
	}

	s := a.open(params.Path)
	value, ok := s.Get(params.Service, params.Item)
	if !ok {
		a.logger().Debug().Str("service", params.Service).Str("item", params.Item).Msg("No value stored")
		return nil
	}
	return a.printValue(value)
}
