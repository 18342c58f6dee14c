// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rajkundu/romparser/internal/options"
	"github.com/rajkundu/romparser/internal/writer"
)

// ParseFlags parses the command line flags of the process.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	if errors.Is(err, flag.ErrHelp) {
		return opts, &UsageError{flags: flags}
	}
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	args := flags.Args()
	if len(args) == 0 && opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{flags: flags, msg: "no input file given"}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage help and all flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: romparser [options] <file.rom>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks that only a single file was passed and that it is the last argument.
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after file to parse, please pass the file to parse as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Only one file can be parsed, use -batch to parse multiple files, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)

	for _, valid := range writer.Formats() {
		if opts.Format == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported output format: %s. Valid options: %s",
		opts.Format, strings.Join(writer.Formats(), ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input .rom file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name output files, for example *.rom")
	flags.StringVar(&opts.Format, "f", writer.Table, "output format ("+strings.Join(writer.Formats(), "/")+")")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
