package sink

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers GET_LOCK with lockResult and records every statement kind.
type fakeServer struct {
	mu         sync.Mutex
	lockResult int64
	failInsert bool
	calls      []string
}

func (s *fakeServer) record(query string) string {
	kind := "other"
	switch {
	case strings.Contains(query, "RELEASE_LOCK"):
		kind = "release_lock"
	case strings.Contains(query, "GET_LOCK"):
		kind = "get_lock"
	case strings.HasPrefix(query, "INSERT"):
		kind = "insert"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, kind)
	return kind
}

type fakeConnector struct{ srv *fakeServer }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{srv: c.srv}, nil
}

func (c fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use the connector") }

type fakeConn struct{ srv *fakeServer }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (c *fakeConn) Close() error                        { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("tx not supported") }

func (c *fakeConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	if c.srv.record(query) == "insert" {
		if c.srv.failInsert {
			return nil, errors.New("duplicate entry")
		}
		return driver.RowsAffected(strings.Count(query, "),(") + 1), nil
	}
	return driver.RowsAffected(0), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.srv.record(query)
	return &scalarRows{v: c.srv.lockResult}, nil
}

type scalarRows struct {
	v    int64
	done bool
}

func (r *scalarRows) Columns() []string { return []string{"result"} }
func (r *scalarRows) Close() error      { return nil }

func (r *scalarRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	dest[0] = r.v
	r.done = true
	return nil
}

func newTestLoader(srv *fakeServer) *Loader {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Loader{
		DB:      sql.OpenDB(fakeConnector{srv: srv}),
		Table:   "people",
		Columns: []string{"name", "age"},
		Chunk:   2,
		Log:     log,
	}
}

func TestLoad(t *testing.T) {
	rows := [][]any{{"Ana", "30"}, {"Bob", "25"}, {"Cid", "7"}}

	testCases := []struct {
		name       string
		lockResult int64
		failInsert bool
		wantErr    bool
		wantRows   int64
		wantCalls  []string
	}{
		{
			name:       "lock granted",
			lockResult: 1,
			wantRows:   3,
			wantCalls:  []string{"get_lock", "insert", "insert", "release_lock"},
		},
		{
			name:       "lock held elsewhere",
			lockResult: 0,
			wantErr:    true,
			wantCalls:  []string{"get_lock"},
		},
		{
			name:       "insert fails releases lock",
			lockResult: 1,
			failInsert: true,
			wantErr:    true,
			wantCalls:  []string{"get_lock", "insert", "release_lock"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := &fakeServer{lockResult: tc.lockResult, failInsert: tc.failInsert}
			l := newTestLoader(srv)
			defer l.DB.Close()

			n, err := l.Load(context.Background(), rows)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantRows, n)
			}
			assert.Equal(t, tc.wantCalls, srv.calls)
		})
	}
}
