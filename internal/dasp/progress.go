package dasp

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progress is a spinner-like bar counting scanned sequences. The database
// isn't indexed so the total is only known at the end. A nil progress does
// nothing.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// newProgress returns a progress bar writing to w, nil if not enabled.
func newProgress(w io.Writer, enabled bool) *progress {
	if !enabled {
		return nil
	}

	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name("scanned sequences: ", decor.WC{W: len("scanned sequences: "), C: decor.DindentRight}),
			decor.CurrentNoUnit("%d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("elapsed: ", decor.WC{W: len("elapsed: ")}),
			decor.Elapsed(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)

	return &progress{p: p, bar: bar}
}

// scanned counts one scored sequence. It's safe for concurrent use.
func (p *progress) scanned(bool) {
	if p == nil {
		return
	}
	p.bar.Increment()
}

// done completes the bar at its current count and waits for it to render.
func (p *progress) done() {
	if p == nil {
		return
	}
	p.bar.SetTotal(-1, true)
	p.p.Wait()
}
