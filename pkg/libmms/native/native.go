//go:build cgo && libmms

// Package native binds libmms through cgo.
package native

/*
#cgo pkg-config: libmms
#include <stdlib.h>
#include <libmms/mms.h>
#include <libmms/mmsh.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/yourusername/mimms/pkg/libmms"
)

type library struct{}

// Open returns the cgo-backed libmms library
func Open() libmms.Library {
	return library{}
}

func (library) ConnectMMS(url string, bandwidth int) (libmms.Conn, error) {
	curl := C.CString(url)
	defer C.free(unsafe.Pointer(curl))

	m := C.mms_connect(nil, nil, curl, C.int(bandwidth))
	if m == nil {
		return nil, fmt.Errorf("%w: mms_connect %s", libmms.ErrConnect, url)
	}
	return &mmsConn{m: m}, nil
}

func (library) ConnectMMSH(url string, bandwidth int) (libmms.Conn, error) {
	curl := C.CString(url)
	defer C.free(unsafe.Pointer(curl))

	m := C.mmsh_connect(nil, nil, curl, C.int(bandwidth))
	if m == nil {
		return nil, fmt.Errorf("%w: mmsh_connect %s", libmms.ErrConnect, url)
	}
	return &mmshConn{m: m}, nil
}

type mmsConn struct {
	m *C.mms_t
}

func (c *mmsConn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := C.mms_read(nil, c.m, (*C.char)(unsafe.Pointer(&p[0])), C.int(len(p)))
	return libmms.ReadResult(int(n))
}

func (c *mmsConn) Length() uint64 {
	return uint64(C.mms_get_length(c.m))
}

func (c *mmsConn) Position() uint64 {
	return libmms.Position(int64(C.mms_get_current_pos(c.m)))
}

func (c *mmsConn) Close() error {
	if c.m != nil {
		C.mms_close(c.m)
		c.m = nil
	}
	return nil
}

type mmshConn struct {
	m *C.mmsh_t
}

func (c *mmshConn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := C.mmsh_read(nil, c.m, (*C.char)(unsafe.Pointer(&p[0])), C.int(len(p)))
	return libmms.ReadResult(int(n))
}

func (c *mmshConn) Length() uint64 {
	return uint64(C.mmsh_get_length(c.m))
}

func (c *mmshConn) Position() uint64 {
	return libmms.Position(int64(C.mmsh_get_current_pos(c.m)))
}

func (c *mmshConn) Close() error {
	if c.m != nil {
		C.mmsh_close(c.m)
		c.m = nil
	}
	return nil
}
