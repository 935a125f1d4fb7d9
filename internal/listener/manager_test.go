package listener

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/pixil98/go-testutil"
)

type runnerFunc func(ctx context.Context, conn io.ReadWriter) error

func (f runnerFunc) RunSession(ctx context.Context, conn io.ReadWriter) error {
	return f(ctx, conn)
}

func TestConnectionManager_AcceptConnection(t *testing.T) {
	tests := map[string]struct {
		max         int
		expOuter    string
		expInner    string
		expInnerRan bool
	}{
		"no limit": {
			expOuter:    "outer",
			expInner:    "inner",
			expInnerRan: true,
		},
		"limit reached": {
			max:      1,
			expOuter: "outer",
			expInner: "The console is full, try again later.\n",
		},
		"limit not reached": {
			max:         2,
			expOuter:    "outer",
			expInner:    "inner",
			expInnerRan: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var m *ConnectionManager
			inner := &pipeRW{r: &bytes.Buffer{}}
			innerRan := false

			m = NewConnectionManager(runnerFunc(func(ctx context.Context, conn io.ReadWriter) error {
				if conn == inner {
					innerRan = true
					_, err := io.WriteString(conn, "inner")
					return err
				}
				// A second connection arrives while this one is running.
				testutil.AssertEqual(t, "active", m.Active(), 1)
				m.AcceptConnection(ctx, inner)
				_, err := io.WriteString(conn, "outer")
				return err
			}), WithMaxSessions(tt.max))

			outer := &pipeRW{r: &bytes.Buffer{}}
			m.AcceptConnection(context.Background(), outer)

			testutil.AssertEqual(t, "outer", outer.out.String(), tt.expOuter)
			testutil.AssertEqual(t, "inner", inner.out.String(), tt.expInner)
			testutil.AssertEqual(t, "inner ran", innerRan, tt.expInnerRan)
			testutil.AssertEqual(t, "active after", m.Active(), 0)
		})
	}
}

func TestConnectionManager_SessionErrorIsLogged(t *testing.T) {
	m := NewConnectionManager(runnerFunc(func(context.Context, io.ReadWriter) error {
		return fmt.Errorf("boom")
	}))

	m.AcceptConnection(context.Background(), &pipeRW{r: &bytes.Buffer{}})
	testutil.AssertEqual(t, "active", m.Active(), 0)
}
