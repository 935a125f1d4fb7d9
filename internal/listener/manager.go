package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/google/uuid"
)

// SessionRunner runs one interactive session over a connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections to the console, refusing
// any beyond the session limit.
type ConnectionManager struct {
	sessions    SessionRunner
	maxSessions int32
	active      atomic.Int32
}

type ConnectionManagerOpt func(*ConnectionManager)

// WithMaxSessions caps concurrent console sessions. Zero means no cap.
func WithMaxSessions(n int) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.maxSessions = int32(n)
	}
}

func NewConnectionManager(sessions SessionRunner, opts ...ConnectionManagerOpt) *ConnectionManager {
	m := &ConnectionManager{
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active is the number of sessions currently running.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	id := uuid.NewString()
	remote := remoteAddr(conn)

	n := m.active.Add(1)
	defer m.active.Add(-1)

	if m.maxSessions > 0 && n > m.maxSessions {
		slog.WarnContext(ctx, "console full, refusing session", "session", id, "remote", remote, "max", m.maxSessions)
		if _, err := fmt.Fprintln(conn, "The console is full, try again later."); err != nil {
			slog.DebugContext(ctx, "writing refusal", "session", id, "error", err)
		}
		return
	}

	slog.InfoContext(ctx, "console session started", "session", id, "remote", remote)
	if err := m.sessions.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "session", id, "error", err)
	}
	slog.InfoContext(ctx, "console session ended", "session", id)
}

func remoteAddr(conn io.ReadWriter) string {
	rc, ok := conn.(interface{ RemoteAddr() net.Addr })
	if !ok || rc.RemoteAddr() == nil {
		return "unknown"
	}
	return rc.RemoteAddr().String()
}
