package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProber answers pings from a script; the last answer repeats.
type scriptedProber struct {
	mu     sync.Mutex
	script []error
	calls  int
}

func (p *scriptedProber) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := min(p.calls, len(p.script)-1)
	p.calls++
	return p.script[i]
}

func (p *scriptedProber) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var errOffline = errors.New("dial tcp: connection refused")

// runMonitor runs a monitor over script until it has probed at least
// len(script)+2 times and returns the reported transitions.
func runMonitor(t *testing.T, script ...error) []bool {
	t.Helper()

	prober := &scriptedProber{script: script}

	var mu sync.Mutex
	var reported []bool
	monitor := NewConnectivityMonitor(prober, 5*time.Millisecond, func(online bool) {
		mu.Lock()
		reported = append(reported, online)
		mu.Unlock()
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return prober.Calls() >= len(script)+2 }, 2*time.Second, time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	return append([]bool(nil), reported...)
}

func TestConnectivityMonitor(t *testing.T) {
	tests := []struct {
		name   string
		script []error
		want   []bool
	}{
		{name: "initial online is reported once", script: []error{nil}, want: []bool{true}},
		{name: "initial offline is reported once", script: []error{errOffline}, want: []bool{false}},
		{
			name:   "transitions only",
			script: []error{nil, nil, errOffline, errOffline, nil},
			want:   []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runMonitor(t, tt.script...))
		})
	}
}

func TestConnectivityMonitor_CancelledProbeIsNotReported(t *testing.T) {
	var reported bool
	monitor := NewConnectivityMonitor(&scriptedProber{script: []error{errOffline}}, time.Hour, func(bool) {
		reported = true
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	monitor.Run(ctx)

	assert.False(t, reported)
}

func TestNewConnectivityMonitor_Defaults(t *testing.T) {
	m := NewConnectivityMonitor(&scriptedProber{script: []error{nil}}, 0, nil, logger.Nop())

	assert.Equal(t, defaultConnectivityInterval, m.interval)
	assert.Equal(t, maxProbeTimeout, m.timeout)

	m = NewConnectivityMonitor(&scriptedProber{script: []error{nil}}, time.Second, nil, logger.Nop())
	assert.Equal(t, time.Second, m.timeout)
}
