package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rajkundu/romparser/internal/detector"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	romData := buildMinimalROM(1)

	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, "probe.rom", romData)

		ldr := New(log.NewTestLogger(t))
		data, err := ldr.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, romData, data)
	})

	t.Run("load zstd compressed rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, "probe.rom.zst", compress(t, romData))

		ldr := New(log.NewTestLogger(t))
		data, err := ldr.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, romData, data)
	})

	t.Run("unsupported extension is rejected before opening", func(t *testing.T) {
		ldr := New(log.NewTestLogger(t))
		_, err := ldr.Load("/nonexistent/probe.bin")
		assert.True(t, errors.Is(err, detector.ErrUnsupportedFormat))
		assert.False(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		ldr := New(log.NewTestLogger(t))
		_, err := ldr.Load("/nonexistent/probe.rom")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "tools.rom")
		assert.NoError(t, os.Mkdir(dir, 0o700))

		ldr := New(log.NewTestLogger(t))
		_, err := ldr.Load(dir)
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, "huge.rom", make([]byte, MaxFileSize+1))

		ldr := New(log.NewTestLogger(t))
		_, err := ldr.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrFileTooLarge))
	})

	t.Run("error on corrupt zstd data", func(t *testing.T) {
		tmpFile := createTempFile(t, "corrupt.rom.zst", []byte{0x01, 0x02, 0x03, 0x04})

		ldr := New(log.NewTestLogger(t))
		_, err := ldr.Load(tmpFile)
		assert.ErrorContains(t, err, "decompressing zstd data")
	})
}

func TestLoadFromBytes(t *testing.T) {
	ldr := New(log.NewTestLogger(t))
	romData := buildMinimalROM(2)

	data, err := ldr.LoadFromBytes(romData, detector.FormatROM)
	assert.NoError(t, err)
	assert.Equal(t, romData, data)

	data, err = ldr.LoadFromBytes(compress(t, romData), detector.FormatROMZstd)
	assert.NoError(t, err)
	assert.Equal(t, romData, data)

	_, err = ldr.LoadFromBytes(romData, detector.FormatUnknown)
	assert.True(t, errors.Is(err, detector.ErrUnsupportedFormat))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	assert.NoError(t, err)
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll(data, nil)
}

// buildMinimalROM creates a rom buffer declaring the given number of zeroed markers.
func buildMinimalROM(markers byte) []byte {
	const headerSize = 72
	const markerSize = 12

	data := make([]byte, headerSize+int(markers)*markerSize)
	data[28] = markers
	return data
}
