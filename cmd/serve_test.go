package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingShutdowner struct {
	called      bool
	errAtCall   error
	deadline    time.Time
	hasDeadline bool
}

func (r *recordingShutdowner) Shutdown(ctx context.Context) error {
	r.called = true
	r.errAtCall = ctx.Err()
	r.deadline, r.hasDeadline = ctx.Deadline()
	return nil
}

func TestGracefulShutdownUsesFreshContext(t *testing.T) {
	r := &recordingShutdowner{}
	gracefulShutdown(r)

	require.True(t, r.called)
	// The drain context must be live with its own deadline, not the
	// already-cancelled signal context.
	assert.NoError(t, r.errAtCall)
	require.True(t, r.hasDeadline)
	assert.WithinDuration(t, time.Now().Add(shutdownGrace), r.deadline, time.Second)
}
