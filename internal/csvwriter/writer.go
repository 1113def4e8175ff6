// =============================================================================
// XML to CSV Converter - CSV Writer Module
// =============================================================================
//
// This module serializes a Table as CSV.
//
// OUTPUT FORMAT:
//   - Field delimiter ","
//   - EVERY field is enclosed in double quotes, including header cells and
//     empty values ("" rather than nothing)
//   - Embedded double quotes are doubled
//   - Records end with CRLF
//   - UTF-8, no byte order mark
//
// encoding/csv only quotes fields that need it, so quoting is done here.
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

const (
	delimiter  = ','
	quote      = '"'
	terminator = "\r\n"
)

// =============================================================================
// WRITER
// =============================================================================

// Writer writes quote-all CSV records to an underlying io.Writer.
// Call Flush when done; Error reports the first write error.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one record. An empty record produces an empty line.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	for i, field := range record {
		if i > 0 {
			w.writeByte(delimiter)
		}
		w.writeByte(quote)
		w.writeString(strings.ReplaceAll(field, `"`, `""`))
		w.writeByte(quote)
	}
	w.writeString(terminator)
	return w.err
}

// WriteAll writes every record and flushes.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Error returns the first error that occurred during Write or Flush.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) writeByte(b byte) {
	if w.err == nil {
		w.err = w.w.WriteByte(b)
	}
}

func (w *Writer) writeString(s string) {
	if w.err == nil {
		_, w.err = w.w.WriteString(s)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteTable writes the header row followed by every data row.
func WriteTable(w io.Writer, table *types.Table) error {
	cw := NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	return cw.WriteAll(table.Rows)
}

// WriteFile creates (or truncates) path and writes the table to it.
//
// RETURNS:
//   - The number of bytes written.
//   - A WRITE error if the file cannot be created, written or closed. A
//     partially written file may remain.
func WriteFile(path string, table *types.Table) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, errors.NewWriteError(path, err)
	}

	counter := &countingWriter{w: file}
	writeErr := WriteTable(counter, table)
	closeErr := file.Close()

	if writeErr != nil {
		return counter.n, errors.NewWriteError(path, writeErr)
	}
	if closeErr != nil {
		return counter.n, errors.NewWriteError(path, closeErr)
	}
	return counter.n, nil
}

// WriteEmptyFile creates (or truncates) path as a zero-byte file.
func WriteEmptyFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError(path, err)
	}
	if err := file.Close(); err != nil {
		return errors.NewWriteError(path, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
