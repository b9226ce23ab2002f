// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

const (
	// notReported is the lastPercent value before the first report is emitted.
	notReported = -1
	// maxPercent is the upper bound of any reported percentage.
	maxPercent = 100
	// coarseClockFactor multiplies the report step when two clock reads
	// return the same millisecond.
	coarseClockFactor = 10
)

// clockMillis returns the current wall-clock time in milliseconds.
var clockMillis = func() int64 {
	return time.Now().UnixMilli()
}

// Reporter tracks cumulative progress against a known or unknown number of
// steps and emits throttled percentage reports to a Sink.
type Reporter struct {
	sink   Sink
	prefix string
	clock  func() time.Time

	maxSteps          uint64
	reportStep        uint64
	reportInterval    int64
	minReportInterval int64

	totalSteps       uint64
	stepsSinceReport uint64
	lastPercent      int
	lastReportClock  int64
	lastInterval     int64
}

// Option configures a Reporter.
type Option func(r *Reporter)

// WithPrefix sets a string that is emitted once, just before the first
// percentage report.
func WithPrefix(prefix string) Option {
	return func(r *Reporter) {
		r.prefix = prefix
	}
}

// WithClock replaces the wall clock, e.g. to make output deterministic in tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Reporter) {
		r.clock = clock
	}
}

// NewReporter creates a Reporter writing to sink. A nil sink discards all output.
// The Reporter must be initialised with Init before use.
func NewReporter(sink Sink, opts ...Option) *Reporter {
	if sink == nil {
		sink = discardSink{}
	}

	r := &Reporter{
		sink:        sink,
		lastPercent: notReported,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Init resets the reporter for a new run of maxSteps steps (0 when the total is unknown).
// The reporter checks the clock once more than initReportStep steps have accumulated
// and self-tunes that threshold so checks happen roughly every reportInterval.
// Nothing is emitted until at least minReportInterval has passed since the previous report.
// Durations are truncated to whole milliseconds.
func (r *Reporter) Init(maxSteps, initReportStep uint64, reportInterval, minReportInterval time.Duration) {
	r.maxSteps = maxSteps
	r.reportStep = initReportStep
	r.reportInterval = reportInterval.Milliseconds()
	r.minReportInterval = minReportInterval.Milliseconds()

	r.totalSteps = 0
	r.stepsSinceReport = 0
	r.lastPercent = notReported
	r.lastReportClock = r.now()
	r.lastInterval = 0
}

// Report records that delta more steps have been completed and emits a
// report if both the step threshold and the minimum interval allow it.
func (r *Reporter) Report(delta uint64) {
	r.stepsSinceReport += delta
	r.totalSteps += delta

	if r.stepsSinceReport <= r.reportStep {
		return
	}

	now := r.now()

	elapsed := now - r.lastReportClock
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed > 0 {
		r.reportStep = uint64(float64(r.reportStep)*(float64(r.reportInterval)/float64(elapsed)) + 0.5)
	} else {
		r.reportStep *= coarseClockFactor
	}

	if elapsed <= r.minReportInterval {
		return
	}

	percent := r.percent()

	if r.lastPercent == notReported && r.prefix != "" {
		r.sink.Emitf("%s", r.prefix)
	}

	switch {
	case percent == r.lastPercent:
		r.sink.Emitf(".")
	case percent == maxPercent:
		r.sink.Emitf("%d%%", percent)
	default:
		r.sink.Emitf("%d%%...", percent)
	}

	r.lastPercent = percent
	r.stepsSinceReport = 0
	r.lastReportClock = now
	r.lastInterval = elapsed
}

// ReportLast terminates the progress line. If the last report was below 100%
// it emits 100% first. It does nothing if no report was ever emitted.
func (r *Reporter) ReportLast() {
	if r.lastPercent == notReported {
		return
	}

	if r.lastPercent != maxPercent {
		r.sink.Emitf("%d%%\n", maxPercent)
		return
	}

	r.sink.Emitf("\n")
}

// Abort terminates the progress line without claiming completion, for runs
// that stop early. It does nothing if no report was ever emitted.
func (r *Reporter) Abort() {
	if r.lastPercent == notReported {
		return
	}

	r.sink.Emitf("\n")
}

func (r *Reporter) now() int64 {
	if r.clock != nil {
		return r.clock().UnixMilli()
	}

	return clockMillis()
}

func (r *Reporter) percent() int {
	if r.maxSteps == 0 {
		return 0
	}

	return min(int(float64(maxPercent)*float64(r.totalSteps)/float64(r.maxSteps)), maxPercent)
}

// TotalSteps returns the number of steps reported since Init.
func (r *Reporter) TotalSteps() uint64 {
	return r.totalSteps
}

// LastPercent returns the last emitted percentage, or -1 if nothing has been reported yet.
func (r *Reporter) LastPercent() int {
	return r.lastPercent
}

// ReportStep returns the current step threshold.
func (r *Reporter) ReportStep() uint64 {
	return r.reportStep
}

// LastInterval returns the time that passed between the last two emitted reports.
func (r *Reporter) LastInterval() time.Duration {
	return time.Duration(r.lastInterval) * time.Millisecond
}
