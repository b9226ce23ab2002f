// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides a rate-limited textual progress reporter for
// long-running, step-based work.
//
// A Reporter is told how many steps have been completed via Report. It only
// looks at the clock once an adaptive number of steps has accumulated, and only
// writes output once a minimum interval has elapsed since the previous report.
// The output is a single line of the form:
//
//	Copying: 0%...12%...47%....93%...100%
//
// where each "." is a heartbeat emitted when no new percentage was reached.
// ReportLast terminates the line, always finishing on 100%.
//
// A Reporter is not safe for concurrent use.
package progress
