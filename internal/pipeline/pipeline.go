// Package pipeline orchestrates the parsing workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/rajkundu/romparser/internal/loader"
	"github.com/rajkundu/romparser/internal/options"
	"github.com/rajkundu/romparser/internal/rom"
	"github.com/rajkundu/romparser/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Result of parsing a single rom file.
type Result struct {
	File    string
	Markers []rom.Marker
}

// Pipeline orchestrates the complete parsing workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new parsing pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Execute loads, decodes and writes the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, w io.Writer) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading file: %w", err)
	}

	return p.ExecuteWithBuffer(ctx, opts.Input, buf, opts, w)
}

// ExecuteWithBuffer decodes and writes an already loaded rom buffer.
// The name is only used for output and logging.
func (p *Pipeline) ExecuteWithBuffer(ctx context.Context, name string, buf []byte,
	opts options.Program, w io.Writer) (*Result, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markers, err := rom.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding markers: %w", err)
	}

	p.logger.Info("Parsed rom file",
		log.String("file", name),
		log.Int("markers", len(markers)))
	for i, m := range markers {
		p.logger.Debug("Marker",
			log.String("label", writer.Label(i)),
			log.String("x", writer.FormatCoordinate(m.X)),
			log.String("y", writer.FormatCoordinate(m.Y)),
			log.String("z", writer.FormatCoordinate(m.Z)))
	}

	out := writer.New(w, writer.Options{Format: opts.Format})
	if err := out.Write(name, markers); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	return &Result{
		File:    name,
		Markers: markers,
	}, nil
}
