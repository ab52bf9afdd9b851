package domain

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// DefaultBandwidth is the connect hint handed to libmms, in bytes per second
const DefaultBandwidth = 128 * 1024

// Options represents a parsed command line. It is built once by ParseOptions
// and passed by value afterwards.
type Options struct {
	URL           string
	Scheme        Scheme
	Output        string
	WriteToStdout bool
	AllowClobber  bool
	RecordMinutes uint32 // 0 records until the end of the stream
	Bandwidth     int    // 0 uses the configured default
	Verbose       bool
	Quiet         bool
	Help          bool
	Invalid       bool
	Diagnostics   []string
}

// ShowsStatus reports whether human status lines go to stdout
func (o Options) ShowsStatus() bool {
	return !o.Quiet && !o.WriteToStdout
}

// UsageError returns the argument error for an invalid option set, or nil
func (o Options) UsageError() error {
	if !o.Invalid {
		return nil
	}
	return &UsageError{Diagnostics: o.Diagnostics}
}

func (o *Options) invalidate(err error) {
	o.Invalid = true
	o.Diagnostics = append(o.Diagnostics, err.Error())
}

// ParseOptions parses the arguments following the program name
func ParseOptions(args []string) Options {
	var opts Options

	fs := pflag.NewFlagSet("mimms", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.BoolVarP(&opts.AllowClobber, "clobber", "c", false, "Allow overwriting an existing file")
	fs.VarP((*decimalUint32)(&opts.RecordMinutes), "time", "t", "Record for the given number of minutes")
	fs.VarP((*decimalInt)(&opts.Bandwidth), "bandwidth", "b", "Bandwidth hint for stream selection in bytes/s")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print verbose debug messages on stderr")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Don't print status messages on stdout")
	fs.BoolVarP(&opts.Help, "help", "h", false, "Show this help message on stdout")

	// Help is honored even when parsing stops at an earlier bad token.
	opts.Help = helpRequested(args)

	parseErr := fs.Parse(args)
	if parseErr != nil {
		opts.invalidate(fmt.Errorf("%w: %v", ErrInvalidArgument, parseErr))
	}
	if fs.Changed("help") {
		opts.Help = true
	}

	for i, arg := range fs.Args() {
		switch i {
		case 0:
			opts.URL = arg
			scheme, err := ClassifyURL(arg)
			opts.Scheme = scheme
			if err != nil {
				opts.invalidate(err)
			}
		case 1:
			opts.Output = arg
			if arg == StdinURL {
				opts.WriteToStdout = true
				opts.Quiet = true
			}
		default:
			opts.invalidate(fmt.Errorf("%w: '%s'", ErrTooManyArguments, arg))
		}
	}

	if parseErr == nil && len(fs.Args()) == 0 {
		opts.invalidate(ErrMissingURL)
	}
	if fs.Changed("bandwidth") && opts.Bandwidth <= 0 {
		opts.invalidate(fmt.Errorf("%w: bandwidth must be positive, got %d", ErrInvalidArgument, opts.Bandwidth))
	}

	return opts
}

// helpRequested scans the tokens before the literal separator for -h/--help
func helpRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}

// decimalUint32 is a uint32 flag that only accepts base 10. pflag's own
// numeric flags also take 0x, 0b, leading-zero octal and underscores.
type decimalUint32 uint32

func (v *decimalUint32) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v = decimalUint32(n)
	return nil
}

func (v *decimalUint32) String() string { return strconv.FormatUint(uint64(*v), 10) }

func (v *decimalUint32) Type() string { return "uint32" }

// decimalInt is the base 10 counterpart for int flags
type decimalInt int

func (v *decimalInt) Set(s string) error {
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return err
	}
	*v = decimalInt(n)
	return nil
}

func (v *decimalInt) String() string { return strconv.FormatInt(int64(*v), 10) }

func (v *decimalInt) Type() string { return "int" }
