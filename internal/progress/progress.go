// Package progress renders transfer progress to the console. Rendering
// is purely cosmetic: the sync loops never depend on it for correctness,
// and it stays silent when output is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Renderer wraps readers so that bytes flowing through them are
// reported to the user.
type Renderer interface {
	// TrackReader returns a reader that renders progress for name as it
	// is consumed. total is the expected byte count, or 0 if unknown.
	TrackReader(name string, total int64, r io.Reader) io.Reader
}

// Noop is a Renderer that never renders anything.
type Noop struct{}

func (Noop) TrackReader(name string, total int64, r io.Reader) io.Reader { return r }

// Console renders a single updating progress line, but only when the
// output is a terminal; otherwise it behaves like Noop.
type Console struct {
	out     *os.File
	enabled bool
}

// NewConsole returns a Console writing to out (typically os.Stderr).
func NewConsole(out *os.File) *Console {
	return &Console{out: out, enabled: term.IsTerminal(int(out.Fd()))}
}

func (c *Console) TrackReader(name string, total int64, r io.Reader) io.Reader {
	if !c.enabled {
		return r
	}

	tracked := &reader{r: r, name: name, total: total, out: c.out, lastPct: -1}

	// Preserve seekability: the AWS SDK rewinds the body when signing
	// and retrying, and a rewind must reset the byte count too.
	if _, ok := r.(io.Seeker); ok {
		return &seekReader{reader: tracked}
	}
	return tracked
}

type reader struct {
	r       io.Reader
	name    string
	total   int64
	done    int64
	out     io.Writer
	lastPct int
}

func (p *reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	p.render(err == io.EOF)
	return n, err
}

func (p *reader) render(final bool) {
	if p.total <= 0 {
		return
	}
	pct := int(p.done * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	if pct == p.lastPct && !final {
		return
	}
	p.lastPct = pct

	fmt.Fprintf(p.out, "\r%s  %s / %s (%d%%)", p.name,
		humanize.Bytes(uint64(p.done)), humanize.Bytes(uint64(p.total)), pct)
	if final {
		fmt.Fprintln(p.out)
	}
}

type seekReader struct {
	*reader
}

func (p *seekReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := p.r.(io.Seeker).Seek(offset, whence)
	if err == nil {
		p.done = pos
		p.lastPct = -1
	}
	return pos, err
}
