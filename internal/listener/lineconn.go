package listener

import (
	"bytes"
	"io"
	"net"
)

// lineConn normalizes console line endings. Input \r\n and a lone \r both
// become \n, and output \n is sent as \r\n.
type lineConn struct {
	rw     io.ReadWriter
	remote net.Addr

	// cr is set when the previous read ended on \r, so a leading \n in the
	// next read completes that line instead of starting an empty one.
	cr bool
}

func newLineConn(rw io.ReadWriter, remote net.Addr) *lineConn {
	return &lineConn{rw: rw, remote: remote}
}

// RemoteAddr is the peer address, or nil when the transport hides it.
func (c *lineConn) RemoteAddr() net.Addr {
	return c.remote
}

func (c *lineConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	out := 0
	for _, b := range p[:n] {
		switch {
		case b == '\r':
			p[out] = '\n'
			out++
			c.cr = true
			continue
		case b == '\n' && c.cr:
		default:
			p[out] = b
			out++
		}
		c.cr = false
	}
	return out, err
}

func (c *lineConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	return len(p), err
}
