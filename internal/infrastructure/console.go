package infrastructure

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Console writes human status messages. Status lines overwrite each other
// with a carriage return; a disabled console writes nothing.
type Console struct {
	w       io.Writer
	enabled bool
	pending int // width of the unterminated text on the current line
}

// NewConsole creates a console writing to w
func NewConsole(w io.Writer, enabled bool) *Console {
	return &Console{w: w, enabled: enabled}
}

// Print writes s and leaves the line open for the next status
func (c *Console) Print(s string) {
	if !c.enabled {
		return
	}
	c.clear()
	fmt.Fprint(c.w, s)
	c.pending = utf8.RuneCountInString(s)
}

// Line writes s as a complete line, replacing any open status
func (c *Console) Line(s string) {
	if !c.enabled {
		return
	}
	c.clear()
	fmt.Fprintln(c.w, s)
	c.pending = 0
}

// Status replaces the current line with s
func (c *Console) Status(s string) {
	c.Print(s)
}

// Finish terminates an open line
func (c *Console) Finish() {
	if !c.enabled || c.pending == 0 {
		return
	}
	fmt.Fprintln(c.w)
	c.pending = 0
}

func (c *Console) clear() {
	if c.pending == 0 {
		return
	}
	fmt.Fprint(c.w, "\r"+strings.Repeat(" ", c.pending)+"\r")
}
