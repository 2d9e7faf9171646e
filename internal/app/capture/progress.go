package capture

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Spinner shows activity on a terminal while a blocking step runs
type Spinner struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

// NewSpinner starts a spinner labelled message writing to out
func NewSpinner(out io.Writer, message string) *Spinner {
	p := mpb.New(
		mpb.WithOutput(out),
		mpb.WithWidth(1),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithAutoRefresh(),
	)
	bar := p.New(0,
		mpb.SpinnerStyle(),
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(
			decor.Name(message, decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), "done"),
		),
	)
	return &Spinner{progress: p, bar: bar}
}

// Stop completes the spinner and waits for the final render
func (s *Spinner) Stop() {
	s.bar.SetTotal(-1, true)
	s.progress.Wait()
}
