package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fatih/structs"
	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
)

// Writer persists run artifacts under a single output directory, prefixing
// every file name with the run timestamp. All writes are atomic (temp file
// in the same directory, then rename).
type Writer struct {
	fs  afero.Fs
	dir string
	ts  string
}

// NewWriter creates a Writer for one run. ts is the run timestamp prefix,
// e.g. "20260826_151203".
func NewWriter(fs afero.Fs, dir, ts string) *Writer {
	return &Writer{fs: fs, dir: dir, ts: ts}
}

// Timestamp returns the run timestamp prefix.
func (w *Writer) Timestamp() string { return w.ts }

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns the timestamp-prefixed path for a run file name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, w.ts+"_"+name)
}

// WriteText writes content to the timestamp-prefixed file and returns its path.
func (w *Writer) WriteText(name, content string) (string, error) {
	path := w.Path(name)
	if err := w.writeAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes v as pretty-printed JSON to the timestamp-prefixed file.
func (w *Writer) WriteJSON(name string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	path := w.Path(name)
	if err := w.writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes a CSV file with a header row derived from the record
// struct's field names, snake_cased. Zero records write no file and return
// an empty path; this is a documented no-op, not an error.
func (w *Writer) WriteCSV(name string, records []interface{}) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	fields := structs.Names(records[0])
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strcase.ToSnake(f)
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		m := structs.Map(rec)
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = fmt.Sprintf("%v", m[f])
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	path := w.Path(name)
	if err := w.writeAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRecovered writes a recovered file body under the recovered/
// subdirectory using the caller-supplied name, without a timestamp prefix.
func (w *Writer) WriteRecovered(name string, data []byte) (string, error) {
	path := filepath.Join(w.dir, "recovered", name)
	if err := w.writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes data to path via a temp file in the same directory,
// then renames over the target.
func (w *Writer) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up temp file on any error path.
	defer func() {
		if tmpName != "" {
			w.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}
	tmpName = "" // prevent deferred removal
	return nil
}

// Rows converts a typed record slice to the []interface{} WriteCSV takes.
func Rows[T any](items []T) []interface{} {
	rows := make([]interface{}, len(items))
	for i := range items {
		rows[i] = items[i]
	}
	return rows
}
