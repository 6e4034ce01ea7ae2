// Package cli is the terminal front end of the triple generator: it shows
// search progress while the generators run and prints what they found.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
	"github.com/agbru/triplegen/internal/ui"
	"github.com/briandowns/spinner"
)

const (
	// SolutionPreview is how many solutions DisplayResult lists without -v.
	SolutionPreview     = 10
	ProgressRefreshRate = 200 * time.Millisecond
	ProgressBarWidth    = 40
)

// FormatExecutionDuration picks a unit suited to d: µs below a millisecond,
// ms below a second, time.Duration's own format above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "< 1µs"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	default:
		return d.String()
	}
}

// Spinner is the part of briandowns/spinner that DisplayProgress drives.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	defer rs.s.Unlock()
	rs.s.Suffix = suffix
}

// newSpinner is replaced in tests.
var newSpinner = func(opts ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, opts...)}
}

// ProgressState keeps the last reported progress of each search.
type ProgressState struct {
	progresses []float64
}

func NewProgressState(numSearches int) *ProgressState {
	return &ProgressState{progresses: make([]float64, max(numSearches, 0))}
}

// Update stores value for search index. Unknown indices are dropped.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage is the mean over all searches, 0 when there are none.
func (ps *ProgressState) CalculateAverage() float64 {
	if len(ps.progresses) == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(len(ps.progresses))
}

// progressBar draws progress, clamped to [0, 1], as width cells.
func progressBar(progress float64, width int) string {
	filled := int(min(max(progress, 0), 1) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// DisplayProgress animates a spinner with the averaged progress of
// numSearches searches until events is closed, then prints a final bar.
// Event.Index selects the search. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, events <-chan triples.ProgressEvent, numSearches int, out io.Writer) {
	defer wg.Done()
	if numSearches <= 0 {
		for range events {
		}
		return
	}

	label := "Progress"
	if numSearches > 1 {
		label = "Avg progress"
	}
	state := NewProgressWithETA(numSearches)
	spin := newSpinner(spinner.WithWriter(out))
	spin.Start()

	tick := time.NewTicker(ProgressRefreshRate)
	defer tick.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				spin.Stop()
				avg := state.CalculateAverage()
				fmt.Fprintf(out, "%s: %6.2f%% [%s] done\n", label, avg*100, progressBar(avg, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(ev.Index, ev.Progress)
		case <-tick.C:
			bar := FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)
			spin.UpdateSuffix(" " + label + ": " + bar)
		}
	}
}

// DisplayResult prints a header, a summary line and a table of the
// solutions of res, cut to SolutionPreview rows unless verbose.
func DisplayResult(res service.Result, verbose bool, out io.Writer) {
	req := res.Request
	fmt.Fprintf(out, "\n%s--- %s (arg %d, bound %s) ---%s\n",
		ui.ColorBold(), req.Filter, req.Arg, formatNumber(req.Bound), ui.ColorReset())

	stop := "stopped at limit"
	if res.Exhausted {
		stop = "bound exhausted"
	}
	fmt.Fprintf(out, "Solutions: %s%d%s (%s triples extracted, %s) in %s%s%s\n",
		ui.ColorGreen(), len(res.Solutions), ui.ColorReset(),
		formatNumber(int64(res.Extracted)), stop,
		ui.ColorYellow(), FormatExecutionDuration(res.Duration), ui.ColorReset())

	if len(res.Solutions) == 0 {
		fmt.Fprintln(out, "No solution found.")
		return
	}

	rows := res.Solutions
	if !verbose {
		rows = rows[:min(len(rows), SolutionPreview)]
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\ta\tb\tc\tperimeter\tarea\tscale")
	for i, s := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n", i+1, s.A, s.B, s.C, s.Perimeter, s.Area, s.Scale)
	}
	_ = tw.Flush()

	if hidden := len(res.Solutions) - len(rows); hidden > 0 {
		fmt.Fprintf(out, "... %d more (use %s-v%s to list all)\n", hidden, ui.ColorYellow(), ui.ColorReset())
	}
}

func formatNumber(n int64) string {
	return formatNumberString(strconv.FormatInt(n, 10))
}

// formatNumberString groups the digits of s by thousands with commas.
func formatNumberString(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
