// Package progress wraps the terminal progress bar the publisher reports
// send status through, so pkg/publisher can stay agnostic of whether
// output is a real terminal.
package progress

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Bar is the collaborator contract the publisher depends on: a sized
// counter that can carry a trailing status message.
type Bar interface {
	Inc()
	SetMessage(msg string)
	Finish()
}

// New returns a terminal progress bar of total length total, writing to
// out, styled to match the elapsed/bar/position/message layout this
// toolkit's ancestor used. total of 0 still renders correctly (unsized).
func New(total int, out io.Writer) Bar {
	bar := pb.New(total)
	bar.SetTemplateString(`{{ etime . }} {{ bar . "[" "#" "#" "-" "]" }} {{ counters . }} {{ string . "status"}}`)
	bar.SetWriter(out)
	bar.Start()
	return &pbBar{bar: bar}
}

type pbBar struct {
	bar *pb.ProgressBar
}

func (p *pbBar) Inc() { p.bar.Increment() }

func (p *pbBar) SetMessage(msg string) {
	p.bar.Set("status", msg)
}

func (p *pbBar) Finish() { p.bar.Finish() }

// Noop is a Bar that discards everything, used when output isn't a
// terminal and a rendered bar would just be noise in a log file.
type Noop struct{}

func (Noop) Inc()              {}
func (Noop) SetMessage(string) {}
func (Noop) Finish()           {}

var _ Bar = (*pbBar)(nil)
var _ Bar = Noop{}

// FormatStatus renders the publisher's trailing status line: in-flight
// count, observed backlog depth, and the running offset.
func FormatStatus(inFlight, depth, offset int) string {
	return fmt.Sprintf("in-progress=%d depth=%d offset=%d", inFlight, depth, offset)
}
