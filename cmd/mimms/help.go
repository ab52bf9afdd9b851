package main

import (
	"fmt"
	"io"

	"github.com/yourusername/mimms/internal/domain"
)

const helpText = `Usage: mimms [options] <url> [output]
Options:
  -c, --clobber          Allow overwriting an existing file;
                           by default, this is not allowed.
  -t, --time <minutes>   Record for the given number of minutes;
                           by default, record until the end.
  -b, --bandwidth <bps>  Bandwidth hint used to pick the stream;
                           by default, %d bytes/s.
  -v, --verbose          Print verbose debug messages on stderr.
  -q, --quiet            Don't print status messages on stdout.
  -h, --help             Show this help message on stdout.
URL Argument:
  mms  (MMS)             i.e. mms://<host>[:port]/<path>
                           will try all supported methods.
  mmst (MMS TCP)         i.e. mmst://<host>[:port]/<path>
                           will only try TCP method.
  mmsu (MMS UDP)         Not currently supported; (poorly suited
                           for streaming downloads anyway).
  mmsh (MMS HTTP)        i.e. mmsh://<host>[:port]/<path>
                           will only try HTTP method.
  http (ASX HTTP)        i.e. http://<host>[:port]/<path>[.asx]
                           only the first supported URL is used.
  -    (stdin)           i.e. look for an MMS URL on stdin;
                           only the first supported URL is used.
Output Argument:
  none                   Streams to file named based on the URL.
  filename               Streams to the given file.
  -                      Streams to stdout. (Implies --quiet.)
`

func printHelp(w io.Writer, defaultBandwidth int) {
	fmt.Fprintf(w, "mimms %s - an MMS (e.g. mms://) stream downloader.\n", domain.Version)
	fmt.Fprintf(w, helpText, defaultBandwidth)
}
