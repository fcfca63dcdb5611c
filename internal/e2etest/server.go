package e2etest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/sdeery14/fitness-app-sub000/internal/logging"
)

// Keys of the log attributes StartServer reads from the server logs.
const (
	// LogAddrKey carries the address the server listens on.
	LogAddrKey = "addr"
	// LogDsnKey carries the SQLite data source name.
	LogDsnKey = "sqlDsn"
)

// RunFunc starts a server and blocks until ctx is done. It has the signature of the run function of cmd/web.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

type Server struct {
	url    string
	client *Client
	db     *sql.DB
	stop   context.CancelCauseFunc
	done   chan struct{}
}

// StartServer runs the server in the background and returns once /api/healthy responds.
//
// The server logs go to logSink, usually testhelpers.NewWriter. The listen address and database DSN are picked
// from the first log records carrying LogAddrKey and LogDsnKey. The server is shut down when the test ends.
func StartServer(t *testing.T, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (*Server, error) {
	ctx, stop := context.WithCancelCause(t.Context())
	s := &Server{url: "", client: nil, db: nil, stop: stop, done: make(chan struct{})}
	t.Cleanup(s.Shutdown)

	addrCh, dsnCh := make(chan string, 1), make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case LogAddrKey:
				offer(addrCh, a.Value.String())
			case LogDsnKey:
				offer(dsnCh, a.Value.String())
			}
			return a
		},
	})))

	go func() {
		defer close(s.done)
		if err := run(ctx, logger, lookupEnv); err != nil {
			stop(err)
		}
	}()

	var addr, dsn string
	for addr == "" || dsn == "" {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("server stopped before it was ready: %w", context.Cause(ctx))
		case addr = <-addrCh:
		case dsn = <-dsnCh:
		}
	}

	var err error
	s.url = "http://" + addr
	if s.client, err = NewClient(s.url); err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err = s.client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	if s.db, err = sql.Open("sqlite3", dsn); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	t.Cleanup(func() { _ = s.db.Close() })
	return s, nil
}

// offer sends v unless ch already holds a value. Only the first logged value matters.
func offer(ch chan<- string, v string) {
	select {
	case ch <- v:
	default:
	}
}

// Client has its own cookie jar and therefore its own planning session.
func (s *Server) Client() *Client { return s.client }

func (s *Server) URL() string { return s.url }

// DB is a separate connection to the server's database for assertions.
func (s *Server) DB() *sql.DB { return s.db }

// Shutdown stops the server and waits for run to return.
func (s *Server) Shutdown() {
	s.stop(nil)
	<-s.done
}
