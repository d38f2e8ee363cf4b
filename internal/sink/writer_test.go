package sink

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper/internal/config"
	"rowmapper/internal/export"
)

type fakeExec struct {
	queries []string
	argLens []int
	failAt  int
}

func (f *fakeExec) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.argLens = append(f.argLens, len(args))
	if f.failAt > 0 && len(f.queries) == f.failAt {
		return nil, errors.New("boom")
	}
	return driver.RowsAffected(len(args) / 2), nil
}

func TestInsertQuery(t *testing.T) {
	q := insertQuery("people", []string{"name", "age"}, 3)
	assert.Equal(t, "INSERT INTO `people` (`name`,`age`) VALUES (?,?),(?,?),(?,?)", q)

	q = insertQuery("crm.people", []string{"we`ird"}, 1)
	assert.Equal(t, "INSERT INTO `crm`.`people` (`we``ird`) VALUES (?)", q)
}

func TestChunkedExec(t *testing.T) {
	rows := make([][]any, 5)
	for i := range rows {
		rows[i] = []any{"n", "a"}
	}

	f := &fakeExec{}
	n, err := chunkedExec(context.Background(), f, "people", []string{"name", "age"}, rows, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, []int{4, 4, 2}, f.argLens)
	assert.Len(t, f.queries, 3)
}

func TestChunkedExecStopsOnError(t *testing.T) {
	rows := [][]any{{"a"}, {"b"}, {"c"}}

	f := &fakeExec{failAt: 2}
	_, err := chunkedExec(context.Background(), f, "t", []string{"x"}, rows, 1)
	assert.Error(t, err)
	assert.Len(t, f.queries, 2)
}

func TestChunkedExecEmpty(t *testing.T) {
	f := &fakeExec{}
	n, err := chunkedExec(context.Background(), f, "t", []string{"x"}, nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.queries)
}

func TestBulkInsertRejectsRaggedRows(t *testing.T) {
	f := &fakeExec{}
	_, err := bulkInsert(context.Background(), f, "t", []string{"x", "y"}, [][]any{{"1"}})
	assert.Error(t, err)
	assert.Empty(t, f.queries)
}

func TestDocumentRows(t *testing.T) {
	d := export.NewDocument([]string{"name", "age"})
	d.Set(0, "Ana")

	assert.Equal(t, [][]any{{"Ana", ""}}, DocumentRows([]export.Document{d}))
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		MySQLHost:      "db.local",
		MySQLPort:      3307,
		MySQLUser:      "loader",
		MySQLPassword:  "secret",
		MySQLDB:        "crm",
		ConnectTimeout: 5 * time.Second,
		QueryTimeout:   30 * time.Second,
	}

	parsed, err := mysql.ParseDSN(DSN(cfg))
	require.NoError(t, err)
	assert.Equal(t, "loader", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db.local:3307", parsed.Addr)
	assert.Equal(t, "crm", parsed.DBName)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Equal(t, 30*time.Second, parsed.ReadTimeout)
}

func TestLoadRequiresTable(t *testing.T) {
	l := &Loader{}
	_, err := l.Load(context.Background(), nil)
	assert.Error(t, err)
}
