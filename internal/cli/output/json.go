package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders one indented JSON document per command, the
// shape jq and scripts expect from --output json.
type JSONFormatter struct{}

// Format writes data as indented JSON with a trailing newline.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
