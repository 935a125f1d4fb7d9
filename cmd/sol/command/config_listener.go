package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"

	"github.com/pixil98/go-sol/internal/listener"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

var listenerTypeNames = map[ListenerType]string{
	ListenerTypeTelnet: "telnet",
	ListenerTypeSSH:    "ssh",
}

func (lt ListenerType) String() string {
	if n, ok := listenerTypeNames[lt]; ok {
		return n
	}
	return fmt.Sprintf("ListenerType(%d)", int(lt))
}

func (lt *ListenerType) UnmarshalText(text []byte) error {
	for t, n := range listenerTypeNames {
		if n == string(text) {
			*lt = t
			return nil
		}
	}
	return fmt.Errorf("unknown listener type: %s", text)
}

type ListenerConfig struct {
	Protocol    ListenerType `json:"protocol"`
	Port        uint16       `json:"port"`
	HostKeyPath string       `json:"host_key_path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.HostKeyPath != "" && cl.Protocol != ListenerTypeSSH {
		el.Add(fmt.Errorf("host_key_path is only used by ssh listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Port, cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.loadOrGenerateHostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Port, cm, hostKey), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

// loadOrGenerateHostKey reads the configured host key. A configured path
// that does not exist yet gets a new key written to it; without a path the
// key lives only as long as the process.
func (cl *ListenerConfig) loadOrGenerateHostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key")
		signer, _, err := generateHostKey()
		return signer, err
	}

	keyBytes, err := os.ReadFile(cl.HostKeyPath)
	if os.IsNotExist(err) {
		signer, pemBytes, err := generateHostKey()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cl.HostKeyPath, pemBytes, 0o600); err != nil {
			return nil, fmt.Errorf("writing host key %q: %w", cl.HostKeyPath, err)
		}
		slog.Info("generated ssh host key", "path", cl.HostKeyPath)
		return signer, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}

func generateHostKey() (ssh.Signer, []byte, error) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating host key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("creating signer from host key: %w", err)
	}
	block, err := ssh.MarshalPrivateKey(privKey, "sol console")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding host key: %w", err)
	}
	return signer, pem.EncodeToMemory(block), nil
}
