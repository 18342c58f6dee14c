// Package loader handles rom file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/rajkundu/romparser/internal/detector"
	"github.com/retroenv/retrogolib/log"
)

// MaxFileSize is the largest accepted rom file, after decompression.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned for files exceeding MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// Loader handles loading rom files from disk.
type Loader struct {
	logger   *log.Logger
	detector *detector.Detector
}

// New creates a new rom file loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger:   logger,
		detector: detector.New(logger),
	}
}

// Load reads the full contents of a rom file. The format is detected from the
// file name before the file is opened, compressed files are returned decompressed.
func (l *Loader) Load(filename string) ([]byte, error) {
	format, err := l.detector.Detect(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", filename, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input path is a directory, not a file: %s", filename)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s has %d bytes (max: %d bytes)", ErrFileTooLarge, filename, info.Size(), MaxFileSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filename, err)
	}

	l.logger.Debug("Loaded file",
		log.String("file", filename),
		log.Int("size", len(data)))

	return l.LoadFromBytes(data, format)
}

// LoadFromBytes returns the rom buffer contained in data of the given format.
func (l *Loader) LoadFromBytes(data []byte, format detector.Format) ([]byte, error) {
	switch format {
	case detector.FormatROM:
		return data, nil

	case detector.FormatROMZstd:
		buf, err := decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing zstd data: %w", err)
		}
		l.logger.Debug("Decompressed file",
			log.Int("compressed", len(data)),
			log.Int("size", len(buf)))
		return buf, nil

	default:
		return nil, fmt.Errorf("%w: %s", detector.ErrUnsupportedFormat, format)
	}
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	buf, err := dec.DecodeAll(data, nil)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, fmt.Errorf("%w: decompressed size exceeds %d bytes", ErrFileTooLarge, MaxFileSize)
		}
		return nil, err
	}
	if len(buf) > MaxFileSize {
		return nil, fmt.Errorf("%w: decompressed size %d exceeds %d bytes", ErrFileTooLarge, len(buf), MaxFileSize)
	}
	return buf, nil
}
