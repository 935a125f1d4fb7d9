package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

const (
	sshServerVersion = "SSH-2.0-sol-console"
	sshBanner        = "Destination Sol operator console\n"
)

type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		NoClientAuth:  true,
		ServerVersion: sshServerVersion,
		BannerCallback: func(ssh.ConnMetadata) string {
			return sshBanner
		},
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SshListener) Start(ctx context.Context) error {
	config := l.serverConfig()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "console listening", "protocol", "ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				cancelConns()
				wg.Wait()
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	// Closing the connection ends the channel loop below.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if awaitShell(ctx, requests) {
			l.cm.AcceptConnection(ctx, newLineConn(ch, sshConn.RemoteAddr()))
		}
		ch.Close()
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// PTYs are refused so the client keeps local echo and line editing. Exec
// and subsystems are refused since the console is interactive only.
func awaitShell(ctx context.Context, in <-chan *ssh.Request) bool {
	ready := make(chan struct{})
	var once sync.Once

	go func() {
		for req := range in {
			ok := req.Type == "shell"
			if req.WantReply {
				req.Reply(ok, nil)
			}
			if ok {
				once.Do(func() { close(ready) })
			}
		}
	}()

	select {
	case <-ready:
		return true
	case <-ctx.Done():
		return false
	}
}
