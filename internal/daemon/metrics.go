package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal    atomic.Int64
	RequestErrors    atomic.Int64
	ConnectionsTotal atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// RecordRequest counts one handled request, and one error if it failed
func (m *Metrics) RecordRequest(failed bool) {
	m.RequestsTotal.Add(1)
	if failed {
		m.RequestErrors.Add(1)
	}
}

// ClientConnected updates the counters for a new connection
func (m *Metrics) ClientConnected() {
	m.ConnectionsTotal.Add(1)
	m.ConnectedClients.Add(1)
}

// ClientDisconnected updates the counters for a closed connection
func (m *Metrics) ClientDisconnected() {
	m.ConnectedClients.Add(-1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal    int64     `json:"requests_total"`
	RequestErrors    int64     `json:"request_errors"`
	ConnectionsTotal int64     `json:"connections_total"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:    m.RequestsTotal.Load(),
		RequestErrors:    m.RequestErrors.Load(),
		ConnectionsTotal: m.ConnectionsTotal.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}
