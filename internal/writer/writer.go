// Package writer renders decoded marker lists as text.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rajkundu/romparser/internal/rom"
)

// Supported output formats.
const (
	Table = "table"
	CSV   = "csv"
)

// Formats returns the names of all supported output formats.
func Formats() []string {
	return []string{Table, CSV}
}

// Options of the writer.
type Options struct {
	Format string
}

// Writer writes marker lists in the configured format.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write outputs the markers decoded from the given input file.
func (w Writer) Write(file string, markers []rom.Marker) error {
	switch strings.ToLower(w.options.Format) {
	case Table, "":
		return w.writeTable(file, markers)
	case CSV:
		return w.writeCSV(markers)
	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
}

func (w Writer) writeTable(file string, markers []rom.Marker) error {
	if _, err := fmt.Fprintf(w.writer, "Input File:\t%s\n# Markers:\t%d\n\n", file, len(markers)); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w.writer, "Marker\t\tX (mm)\t\tY (mm)\t\tZ (mm)"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for i, m := range markers {
		_, err := fmt.Fprintf(w.writer, "%s\t\t%s\t\t%s\t\t%s\n",
			Label(i), FormatCoordinate(m.X), FormatCoordinate(m.Y), FormatCoordinate(m.Z))
		if err != nil {
			return fmt.Errorf("writing marker %s: %w", Label(i), err)
		}
	}
	return nil
}

func (w Writer) writeCSV(markers []rom.Marker) error {
	cw := csv.NewWriter(w.writer)
	if err := cw.Write([]string{"marker", "x", "y", "z"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i, m := range markers {
		record := []string{Label(i), FormatCoordinate(m.X), FormatCoordinate(m.Y), FormatCoordinate(m.Z)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing marker %s: %w", Label(i), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// Label returns the row label of the marker at the given index:
// A to Z, followed by AA, AB and so on.
func Label(index int) string {
	var b []byte
	for n := index + 1; n > 0; n /= 26 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
	}
	return string(b)
}

// FormatCoordinate returns the shortest decimal form of a coordinate that
// always contains a decimal point, for example 0.0 or 4.56.
func FormatCoordinate(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
