package cli

import (
	"fmt"
	"time"
)

const (
	// etaWarmup is how long a run must last before an ETA is shown.
	etaWarmup = 100 * time.Millisecond
	// etaSampleGap is the minimum gap between two rate samples.
	etaSampleGap = 50 * time.Millisecond
	// etaCeiling caps reported estimates.
	etaCeiling = 24 * time.Hour
	// rateWeight is the weight of the newest sample in the smoothed rate.
	rateWeight = 0.3
)

// ProgressWithETA adds a remaining-time estimate to ProgressState.
//
// A search reports the hypotenuse it reached divided by its bound, and the
// count of primitive triples below a hypotenuse grows roughly linearly with
// it, so a linear extrapolation of the averaged progress is a fair estimate.
type ProgressWithETA struct {
	*ProgressState
	clock func() time.Time

	started    time.Time
	sampledAt  time.Time
	sampledVal float64
	rate       float64 // averaged progress per second, 0 until known
}

// NewProgressWithETA tracks numSearches searches starting now.
func NewProgressWithETA(numSearches int) *ProgressWithETA {
	return newProgressWithClock(numSearches, time.Now)
}

func newProgressWithClock(numSearches int, clock func() time.Time) *ProgressWithETA {
	t0 := clock()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numSearches),
		clock:         clock,
		started:       t0,
		sampledAt:     t0,
	}
}

// UpdateWithETA stores the progress of search index and returns the new
// average together with the estimated time left. The estimate is 0 while
// the run is too young to say anything.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	now := p.clock()

	if now.Sub(p.started) < etaWarmup || avg <= 0.001 {
		p.sampledAt, p.sampledVal = now, avg
		return avg, 0
	}
	p.sample(now, avg)
	return avg, p.remaining(avg)
}

// sample folds the progress made since the previous sample into the rate.
func (p *ProgressWithETA) sample(now time.Time, avg float64) {
	gap := now.Sub(p.sampledAt)
	if gap <= etaSampleGap {
		return
	}
	if delta := avg - p.sampledVal; delta > 0 {
		switch {
		case p.rate == 0:
			p.rate = avg / now.Sub(p.started).Seconds()
		default:
			p.rate += rateWeight * (delta/gap.Seconds() - p.rate)
		}
	}
	p.sampledAt, p.sampledVal = now, avg
}

func (p *ProgressWithETA) remaining(avg float64) time.Duration {
	if p.rate <= 0 || avg >= 1 {
		return 0
	}
	secs := (1 - avg) / p.rate
	return min(time.Duration(secs*float64(time.Second)), etaCeiling)
}

// GetETA returns the estimate for the current average without recording a
// new sample.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.remaining(p.CalculateAverage())
}

// FormatETA renders eta with at most two units: "< 1s", "45s", "2m30s",
// "1h15m". Non-positive durations read as "estimating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "estimating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta/time.Second))
	case eta < time.Hour:
		return twoUnits(int(eta/time.Minute), "m", int(eta%time.Minute/time.Second), "s")
	default:
		return twoUnits(int(eta/time.Hour), "h", int(eta%time.Hour/time.Minute), "m")
	}
}

func twoUnits(major int, majorUnit string, minor int, minorUnit string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, majorUnit)
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
