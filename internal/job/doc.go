// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package job runs a list of file copies and moves, reporting progress in
// bytes as each file completes.
//
// A Plan is either built from command line arguments with NewPlan or loaded
// from a YAML or HCL file with LoadPlan, or FetchPlan for plans kept in a
// repository or on a web server:
//
//	progress:
//	  prefix: "Archiving: "
//	  interval: 500ms
//	transfers:
//	  - source: /data/run1.bin
//	    destination: /archive/run1.bin
//	    mode: move
//
// or, equivalently:
//
//	progress {
//	  prefix   = "Archiving: "
//	  interval = "500ms"
//	}
//
//	transfer {
//	  source      = "/data/run1.bin"
//	  destination = "/archive/run1.bin"
//	  mode        = "move"
//	}
package job
