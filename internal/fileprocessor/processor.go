// Package fileprocessor handles file selection, output creation and processing
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rajkundu/romparser/internal/detector"
	"github.com/rajkundu/romparser/internal/options"
	"github.com/rajkundu/romparser/internal/pipeline"
	"github.com/rajkundu/romparser/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile parses the input file of the options and writes the result to the
// output file, or to stdout if no output file is set. A created output file is
// removed again if parsing fails.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) (*pipeline.Result, error) {
	w, err := createWriter(opts)
	if err != nil {
		return nil, fmt.Errorf("creating writer: %w", err)
	}

	pipe := pipeline.New(logger)
	result, err := pipe.Execute(ctx, opts, w)

	if closer, ok := w.(io.Closer); ok && w != os.Stdout {
		if closeErr := closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file %s: %w", opts.Output, closeErr)
		}
	}
	if err != nil {
		if opts.Output != "" {
			_ = os.Remove(opts.Output)
		}
		return nil, err
	}
	return result, nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the output filename for a given input file,
// replacing the rom extension with one matching the output format.
func GenerateOutputFilename(inputFile, format string) string {
	base := inputFile
	for _, ext := range []string{detector.ExtensionROMZstd, detector.ExtensionROM} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}

	if strings.ToLower(format) == writer.CSV {
		return base + ".csv"
	}
	return base + ".txt"
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("romparser - NDI rom marker parser",
		log.String("version", buildinfo.Version(version, commit, date)))
}
