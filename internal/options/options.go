// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // rom file to parse
	Output string // output file, stdout if empty
	Batch  string // glob pattern of rom files to parse
}

// Flags contains behavior options.
type Flags struct {
	Format string // output format, see writer.Formats
	Debug  bool
	Quiet  bool
}

// Program options of the parser.
type Program struct {
	Parameters
	Flags
}
