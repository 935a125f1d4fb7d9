package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves the remote console over telnet.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

// Start serves until ctx is canceled. Open console sessions are canceled
// and waited for before Start returns.
func (l *TelnetListener) Start(ctx context.Context) error {
	sessions := newConsoleSessions(l.cm.AcceptConnection)
	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), sessions)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			sessions.closeAll()
		case <-stopped:
		}
	}()

	slog.InfoContext(ctx, "console listening", "protocol", "telnet", "port", l.port)

	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

// consoleSessions hands each telnet connection to the console. Sessions
// share one context so shutdown ends them together.
type consoleSessions struct {
	accept func(context.Context, io.ReadWriter)
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newConsoleSessions(accept func(context.Context, io.ReadWriter)) *consoleSessions {
	ctx, cancel := context.WithCancel(context.Background())
	return &consoleSessions{accept: accept, ctx: ctx, cancel: cancel}
}

func (s *consoleSessions) HandleTelnet(conn *telnet.Connection) {
	s.wg.Add(1)
	defer s.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			slog.ErrorContext(s.ctx, "closing telnet connection", "error", err)
		}
	}()

	// Telnet peers send whole lines.
	s.accept(s.ctx, newLineConn(conn, nil))
}

func (s *consoleSessions) closeAll() {
	s.cancel()
	s.wg.Wait()
}
