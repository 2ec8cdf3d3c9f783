package output

import (
	"io"

	"github.com/davetashner/labtrack/internal/store"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONFormatter writes the full backup document: catalog and reports,
// stamped with the export time.
type JSONFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the backup document to w. The result can be read back with
// store.ParseDocument.
func (f *JSONFormatter) Format(ex Export, w io.Writer) error {
	data, err := store.Backup(ex.Book, ex.Now).Encode()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
