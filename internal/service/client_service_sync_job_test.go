// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanNotifier отдаёт каждый ScheduleSync в канал.
type chanNotifier chan struct{}

func (c chanNotifier) ScheduleSync() {
	select {
	case c <- struct{}{}:
	default:
	}
}

func waitTick(t *testing.T, ticks chanNotifier) {
	t.Helper()
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("sync was not requested")
	}
}

func assertNoTick(t *testing.T, ticks chanNotifier, within time.Duration) {
	t.Helper()
	select {
	case <-ticks:
		t.Fatal("unexpected sync request")
	case <-time.After(within):
	}
}

func TestClientSyncJob_RequestsSyncEveryInterval(t *testing.T) {
	ticks := make(chanNotifier, 1)
	job := NewClientSyncJob(ticks)

	job.Start(context.Background(), 5*time.Millisecond)
	defer job.Stop()

	for range 3 {
		waitTick(t, ticks)
	}
}

func TestClientSyncJob_StopIsFinal(t *testing.T) {
	ticks := make(chanNotifier, 1)
	job := NewClientSyncJob(ticks)

	job.Start(context.Background(), 5*time.Millisecond)
	waitTick(t, ticks)
	job.Stop()

	// drain a tick that raced with Stop
	select {
	case <-ticks:
	default:
	}
	assertNoTick(t, ticks, 30*time.Millisecond)

	assert.NotPanics(t, job.Stop)
}

func TestClientSyncJob_StopBeforeStart(t *testing.T) {
	assert.NotPanics(t, NewClientSyncJob(make(chanNotifier)).Stop)
}

func TestClientSyncJob_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		ticks := make(chanNotifier, 1)
		job := NewClientSyncJob(ticks)

		job.Start(context.Background(), interval)
		assertNoTick(t, ticks, 20*time.Millisecond)
		job.Stop()
	}
	require.Equal(t, 5*time.Minute, defaultSyncJobInterval)
}

func TestClientSyncJob_RestartReplacesTicker(t *testing.T) {
	ticks := make(chanNotifier, 1)
	job := NewClientSyncJob(ticks)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 5*time.Millisecond)
	defer job.Stop()

	waitTick(t, ticks)
}

func TestClientSyncJob_ContextCancelEndsGoroutine(t *testing.T) {
	job := NewClientSyncJob(make(chanNotifier, 1))
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}
