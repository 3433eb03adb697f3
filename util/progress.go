package util

import (
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
)

const plainProgressTemplate = `{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}` + "\n"

// NewProgressBar creates a byte counting progress bar, which is not started yet. A total of zero means the total is
// unknown. Outside of a terminal the bar is rendered line by line.
func NewProgressBar(prefix string, total int64) *pb.ProgressBar {
	bar := pb.New64(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.Bytes, true)
	bar.SetRefreshRate(time.Second)
	if width, err := termutil.TerminalWidth(); width == 0 || err != nil {
		bar.SetTemplateString(plainProgressTemplate)
	}
	return bar
}
