package cli

// ListParams contains parameters for the List command
type ListParams struct {
	Path string
	// Values adds the stored value as a third column.
	Values bool
}

// List returns one row per stored entry, sorted by service then item.
func (a *App) List(params ListParams) [][]string {
	entries := a.open(params.Path).ListEntries()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if params.Values {
			rows = append(rows, []string{e.Service, e.Item, e.Value})
			continue
		}
		rows = append(rows, []string{e.Service, e.Item})
	}
	return rows
}
