// Package detector handles input file format detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFormat is returned for file names that do not carry a supported extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format of an input file.
type Format int

const (
	// FormatUnknown is returned together with ErrUnsupportedFormat.
	FormatUnknown Format = iota
	// FormatROM is an uncompressed NDI .rom file.
	FormatROM
	// FormatROMZstd is a zstd compressed NDI .rom file.
	FormatROMZstd
)

// Supported file name extensions.
const (
	ExtensionROM     = ".rom"
	ExtensionROMZstd = ".rom.zst"
)

func (f Format) String() string {
	switch f {
	case FormatROM:
		return "rom"
	case FormatROMZstd:
		return "rom+zstd"
	default:
		return "unknown"
	}
}

// Detector handles format detection from file names.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the file format from the extension of the file name.
// The check is case sensitive and only inspects the name, the file is not opened.
func (d *Detector) Detect(filename string) (Format, error) {
	var format Format
	switch {
	case strings.HasSuffix(filename, ExtensionROM):
		format = FormatROM
	case strings.HasSuffix(filename, ExtensionROMZstd):
		format = FormatROMZstd
	default:
		return FormatUnknown, fmt.Errorf("%w: '%s', only %s and %s files are supported",
			ErrUnsupportedFormat, filepath.Base(filename), ExtensionROM, ExtensionROMZstd)
	}

	d.logger.Debug("Detected file format",
		log.String("format", format.String()),
		log.String("file", filename))
	return format, nil
}
