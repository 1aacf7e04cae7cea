// Package tabular writes export rows as CSV text or spreadsheet workbooks.
package tabular

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
)

// Quoting selects how CSV fields are quoted.
type Quoting int

const (
	// QuoteAll wraps every field in double quotes.
	QuoteAll Quoting = iota
	// QuoteMinimal quotes only fields containing a delimiter, quote, or line break.
	QuoteMinimal
)

// RowWriter writes one record per call. Close flushes buffered output.
type RowWriter interface {
	WriteRow(row []string) error
	Close() error
}

// NewCSVWriter returns a CRLF-terminated CSV writer with the given quoting.
func NewCSVWriter(w io.Writer, quoting Quoting) RowWriter {
	if quoting == QuoteMinimal {
		cw := csv.NewWriter(w)
		cw.UseCRLF = true
		return &minimalWriter{w: cw}
	}
	return &quoteAllWriter{w: bufio.NewWriter(w)}
}

// WriteAll writes header followed by rows and flushes.
func WriteAll(rw RowWriter, header []string, rows [][]string) error {
	if err := rw.WriteRow(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := rw.WriteRow(row); err != nil {
			return err
		}
	}
	return rw.Close()
}

type minimalWriter struct {
	w *csv.Writer
}

func (m *minimalWriter) WriteRow(row []string) error {
	return m.w.Write(row)
}

func (m *minimalWriter) Close() error {
	m.w.Flush()
	return m.w.Error()
}

// encoding/csv has no quote-everything mode.
type quoteAllWriter struct {
	w *bufio.Writer
}

func (q *quoteAllWriter) WriteRow(row []string) error {
	for i, field := range row {
		if i > 0 {
			if err := q.w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := q.w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := q.w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if err := q.w.WriteByte('"'); err != nil {
			return err
		}
	}
	_, err := q.w.WriteString("\r\n")
	return err
}

func (q *quoteAllWriter) Close() error {
	return q.w.Flush()
}
