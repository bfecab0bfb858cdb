package util

import (
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

// Create new byte-counting progress bar with custom options.
// Callers must wait on the returned container once the bar is complete or aborted.
func NewBytesProgressBar(total int64, name string) (*mpb.Progress, *mpb.Bar) {
	p := mpb.New()
	bar := p.New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding("-").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 2, C: decor.DidentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.CountersKibiByte(" (% .2f / % .2f)"),
		),
	)

	return p, bar
}
