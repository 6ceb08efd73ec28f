package command

// Result is what a handler hands back to the dispatcher: None, Status or Rows.
type Result interface {
	result()
}

// None produces no output.
type None struct{}

// Status carries an outcome for callers and logs; it is never printed.
type Status struct {
	Value any
}

// Rows are printed one per line, fields separated by RowSeparator.
type Rows [][]string

// RowSeparator joins the fields of a rendered row.
const RowSeparator = "  "

func (None) result()   {}
func (Status) result() {}
func (Rows) result()   {}
