package treeshake

import (
	"bytes"
	"strings"
)

// sideEffectNeedle is the substring the bundler's side-effect diagnostics
// carry.
const sideEffectNeedle = "First side effect in"

// SideEffectCapture is an io.Writer that retains only the lines of a
// bundler's log stream that report a first side effect. Writes may split
// lines at arbitrary byte boundaries; everything else in the stream is
// dropped.
type SideEffectCapture struct {
	buf   bytes.Buffer // partial trailing line
	lines []string
}

func (c *SideEffectCapture) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		idx := bytes.IndexByte(c.buf.Bytes(), '\n')
		if idx < 0 {
			return len(p), nil
		}
		line := string(c.buf.Next(idx + 1))
		c.capture(line)
	}
}

// Flush captures a trailing line that arrived without a newline. Call it
// once the bundler has exited.
func (c *SideEffectCapture) Flush() {
	if c.buf.Len() == 0 {
		return
	}
	c.capture(c.buf.String())
	c.buf.Reset()
}

// Lines returns the captured diagnostics in arrival order.
func (c *SideEffectCapture) Lines() []string {
	return append([]string(nil), c.lines...)
}

func (c *SideEffectCapture) capture(line string) {
	if strings.Contains(line, sideEffectNeedle) {
		c.lines = append(c.lines, strings.TrimSpace(line))
	}
}
