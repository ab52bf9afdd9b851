package domain

import (
	"fmt"
	"regexp"
)

// Scheme represents the transport requested by a URL
type Scheme string

const (
	SchemeMMS   Scheme = "mms"   // try TCP, then HTTP
	SchemeMMST  Scheme = "mmst"  // TCP only
	SchemeMMSU  Scheme = "mmsu"  // UDP, recognized but unsupported
	SchemeMMSH  Scheme = "mmsh"  // HTTP only
	SchemeHTTP  Scheme = "http"  // ASX playlist to search for an MMS URL
	SchemeStdin Scheme = "stdin" // search stdin for an MMS URL
)

// StdinURL is the url argument that selects SchemeStdin
const StdinURL = "-"

var schemePrefix = regexp.MustCompile(`^([a-z]+)://`)

// ClassifyURL maps a raw url argument to its transport scheme.
// SchemeMMSU is returned together with ErrMMSUNotSupported.
func ClassifyURL(raw string) (Scheme, error) {
	if raw == StdinURL {
		return SchemeStdin, nil
	}

	m := schemePrefix.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%w: '%s'", ErrUnparseableURL, raw)
	}

	switch m[1] {
	case "mms":
		return SchemeMMS, nil
	case "mmst":
		return SchemeMMST, nil
	case "mmsu":
		return SchemeMMSU, ErrMMSUNotSupported
	case "mmsh":
		return SchemeMMSH, nil
	case "http":
		return SchemeHTTP, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedURL, raw)
	}
}

// NeedsResolution reports whether the URL has to be searched for an embedded MMS URL
func (s Scheme) NeedsResolution() bool {
	return s == SchemeHTTP || s == SchemeStdin
}

// TriesTCP reports whether a TCP connect is attempted for the scheme
func (s Scheme) TriesTCP() bool {
	return s == SchemeMMS || s == SchemeMMST
}

// String returns the upper-case name used in verbose output
func (s Scheme) String() string {
	switch s {
	case SchemeMMS:
		return "MMS"
	case SchemeMMST:
		return "MMST"
	case SchemeMMSU:
		return "MMSU"
	case SchemeMMSH:
		return "MMSH"
	case SchemeHTTP:
		return "HTTP"
	case SchemeStdin:
		return "STDIN"
	default:
		return "UNKNOWN"
	}
}
