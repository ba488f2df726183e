package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while issue pages are fetched. The total is
// unknown up front, so reporters count upward rather than toward a target.
type Reporter interface {
	Start(label string)
	Add(n int)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive
// terminal, or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a spinner with a running count.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(label string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Fetching "+label),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Add(n int) {
	if r.bar != nil {
		_ = r.bar.Add(n)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	label string
	total int
}

func (r *CIReporter) Start(label string) {
	r.label = label
	r.total = 0
	fmt.Fprintf(os.Stderr, "Fetching %s\n", label)
}

func (r *CIReporter) Add(n int) {
	r.total += n
	fmt.Fprintf(os.Stderr, "  fetched %d issues (%s)\n", r.total, r.label)
}

func (r *CIReporter) Finish() {}

// Silent discards all progress updates.
type Silent struct{}

func (Silent) Start(string) {}
func (Silent) Add(int)      {}
func (Silent) Finish()      {}
