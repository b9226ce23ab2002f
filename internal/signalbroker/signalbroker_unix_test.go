// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package signalbroker

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RelaysSignal(t *testing.T) {
	ctx, cancel := quietContext()
	defer cancel()

	ch := New(ctx, syscall.SIGUSR1)
	defer Stop(ch)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	select {
	case sig := <-ch:
		assert.Equal(t, syscall.SIGUSR1, sig)
	case <-time.After(5 * time.Second):
		t.Fatal("signal was not relayed")
	}
}
