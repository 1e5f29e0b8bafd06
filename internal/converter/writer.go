package converter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"messecrawl/internal/models"
)

// WriteRows writes the fixed header and one CSV record per row.
// With bom set the output starts with a UTF-8 byte order mark.
func WriteRows(w io.Writer, rows []models.ExhibitorRow, bom bool) error {
	out := w

	var tw *transform.Writer
	if bom {
		tw = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		out = tw
	}

	rw := newRecordWriter(out)

	if err := rw.write(models.CSVHeader); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	for i, row := range rows {
		if err := rw.write(row.Record()); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrSinkWrite, i, err)
		}
	}

	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("%w: %w", ErrSinkWrite, err)
		}
	}

	return nil
}

// recordWriter ends every record with CRLF while field contents keep their
// bytes. csv.Writer with UseCRLF would drop a lone '\r' and rewrite '\n' inside fields.
type recordWriter struct {
	out io.Writer
	buf bytes.Buffer
	cw  *csv.Writer
}

func newRecordWriter(out io.Writer) *recordWriter {
	rw := &recordWriter{out: out}
	rw.cw = csv.NewWriter(&rw.buf)

	return rw
}

func (rw *recordWriter) write(record []string) error {
	rw.buf.Reset()

	if err := rw.cw.Write(record); err != nil {
		return err
	}

	rw.cw.Flush()

	if err := rw.cw.Error(); err != nil {
		return err
	}

	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	line = append(line, '\r', '\n')

	_, err := rw.out.Write(line)

	return err
}

// WriteRowsFile writes rows to path. The file is replaced atomically, so a failed
// write leaves any previous file untouched and no partial output behind.
func WriteRowsFile(path string, rows []models.ExhibitorRow, bom bool) (err error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
			return fmt.Errorf("%w: %w", ErrSinkWrite, mkdirErr)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteRows(tmp, rows, bom); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	return nil
}
