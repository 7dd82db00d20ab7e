// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

const (
	defaultConnectivityInterval = 15 * time.Second
	maxProbeTimeout             = 5 * time.Second
)

// ConnectivityMonitor probes the remote store on an interval and reports
// online/offline transitions. The first probe always reports.
type ConnectivityMonitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	onChange func(online bool)
	logger   *logger.Logger

	known  bool
	online bool
}

func NewConnectivityMonitor(prober Prober, interval time.Duration, onChange func(online bool), logger *logger.Logger) *ConnectivityMonitor {
	if interval <= 0 {
		interval = defaultConnectivityInterval
	}

	return &ConnectivityMonitor{
		prober:   prober,
		interval: interval,
		timeout:  min(interval, maxProbeTimeout),
		onChange: onChange,
		logger:   logger,
	}
}

// Run probes immediately and then every interval until ctx is done.
func (m *ConnectivityMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *ConnectivityMonitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Ping(probeCtx)
	cancel()

	// a probe cut short by shutdown says nothing about the network
	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if m.known && online == m.online {
		return
	}
	m.known = true
	m.online = online

	if online {
		m.logger.Info().Str("func", "*ConnectivityMonitor.probe").Msg("remote store is reachable")
	} else {
		m.logger.Warn().Err(err).Str("func", "*ConnectivityMonitor.probe").Msg("remote store is unreachable")
	}

	if m.onChange != nil {
		m.onChange(online)
	}
}
