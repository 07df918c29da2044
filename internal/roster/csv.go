package roster

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// ReadTable loads a comma-delimited file. Rows keep their file order; short
// rows are allowed and read as empty cells.
func ReadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return readTable(path, f)
}

func readTable(path string, r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, &FormatError{Path: path, Err: errors.New("no header row")}
		}
		return Table{}, classifyReadErr(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, classifyReadErr(path, err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func classifyReadErr(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &FormatError{Path: path, Err: err}
	}
	return &IOError{Op: "read", Path: path, Err: err}
}

// WriteTable writes t to path, replacing any existing file. The data goes to
// a temporary sibling first and is renamed into place, so a failed write
// leaves the destination untouched.
func WriteTable(path string, t Table) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := w.WriteAll(t.Records); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// WriteOutput serializes the bulk-create rows to path.
func WriteOutput(path string, rows OutputTable) error {
	return WriteTable(path, rows.Table())
}

// ReadOutput reads a bulk-create file written by WriteOutput.
func ReadOutput(path string) (OutputTable, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return OutputRows(path, t)
}
