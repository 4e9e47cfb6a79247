package logger

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	mirrorDialTimeout   = 2 * time.Second
	mirrorWriteTimeout  = time.Second
	mirrorRetryInterval = 5 * time.Second
)

var errMirrorCooldown = errors.New("log mirror: retry cooldown in effect")

// TCPMirror streams log entries to a Logstash-style TCP input without ever
// blocking the caller. It keeps a single connection open and drops entries
// while the remote end is unreachable, retrying on a cool-down.
type TCPMirror struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

// NewTCPMirror returns a mirror targeting addr. The mirror satisfies
// zapcore.WriteSyncer and is safe for concurrent use.
func NewTCPMirror(addr string) (*TCPMirror, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("log mirror: empty address")
	}
	return &TCPMirror{addr: addr}, nil
}

// Write forwards one log entry. Failures are swallowed: a down log collector
// must never take the service with it.
func (m *TCPMirror) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	data := make([]byte, len(p))
	copy(data, p)
	if data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if err := m.ensureConnLocked(); err != nil {
		return len(p), nil
	}

	_ = m.conn.SetWriteDeadline(time.Now().Add(mirrorWriteTimeout))
	if _, err := m.conn.Write(data); err != nil {
		_ = m.conn.Close()
		m.conn = nil
		m.nextRetry = time.Now().Add(mirrorRetryInterval)
		return len(p), nil
	}
	return len(p), nil
}

// Sync is a no-op; entries are written straight to the socket.
func (m *TCPMirror) Sync() error { return nil }

// Close tears down the underlying connection.
func (m *TCPMirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

func (m *TCPMirror) ensureConnLocked() error {
	if m.conn != nil {
		return nil
	}
	if !m.nextRetry.IsZero() && time.Now().Before(m.nextRetry) {
		return errMirrorCooldown
	}

	conn, err := net.DialTimeout("tcp", m.addr, mirrorDialTimeout)
	if err != nil {
		m.nextRetry = time.Now().Add(mirrorRetryInterval)
		return err
	}
	m.conn = conn
	m.nextRetry = time.Time{}
	return nil
}
