package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"contextmap/internal/contextmap"
)

// progressReporter renders generation progress with a progress bar.
type progressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newProgressReporter(quiet bool) *progressReporter {
	return &progressReporter{quiet: quiet}
}

func (p *progressReporter) OnDiscoveryComplete(totalFiles int) {
	if p.quiet {
		return
	}

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting exports"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *progressReporter) OnFileProcessed(relPath string) {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *progressReporter) OnComplete(summary contextmap.Summary) {
	if p.quiet {
		return
	}
	fmt.Printf("✓ Extracted %d functions and %d types from %d files (%d parse errors)\n",
		summary.ExportedCallables, summary.ExportedTypes, summary.Parsed, summary.ParseFailed)
}
