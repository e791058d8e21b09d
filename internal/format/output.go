package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes v in the requested output format (json, the default, or edn).
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes one JSON document followed by a newline. HTML escaping is
// off so names like "R&D" stay readable in terminals.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
