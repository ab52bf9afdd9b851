//go:build !cgo || !libmms

// Package native binds libmms through cgo when built with -tags libmms.
// This build has no libmms: every connect fails with libmms.ErrUnavailable.
package native

import "github.com/yourusername/mimms/pkg/libmms"

type library struct{}

// Open returns a library whose connects always fail
func Open() libmms.Library {
	return library{}
}

func (library) ConnectMMS(url string, bandwidth int) (libmms.Conn, error) {
	return nil, libmms.ErrUnavailable
}

func (library) ConnectMMSH(url string, bandwidth int) (libmms.Conn, error) {
	return nil, libmms.ErrUnavailable
}
