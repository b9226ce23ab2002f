// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
)

// Watch reads sigCh until ctx is done or the channel is closed.
// The second signal of any one kind calls cancel and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, again := seen[sig]; again {
				ctxlog.Warn(ctx, "received signal again, stopping after the current transfer", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Warn(ctx, "received signal, send it again to stop", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
