package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Supported export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportParams contains parameters for the Export command
type ExportParams struct {
	Path   string
	Format string
}

// Export prints the whole document in the requested format.
func (a *App) Export(params ExportParams) error {
	doc := a.open(params.Path).Load().Doc

	var buf bytes.Buffer
	switch params.Format {
	case "", FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		if len(doc) == 0 {
			buf.WriteString("{}\n")
			break
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s", params.Format)
	}

	if _, err := a.out().Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
