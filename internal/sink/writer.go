package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"rowmapper/internal/export"
)

const defaultChunk = 2000

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Loader inserts rows into one MySQL table. Columns name the target table
// columns in the order values appear in every row.
type Loader struct {
	DB          *sql.DB
	Table       string
	Columns     []string
	Chunk       int
	LockTimeout int
	Log         logrus.FieldLogger
}

// Load inserts rows in chunks while holding a named lock for the table, so two
// loads into the same table never interleave. It returns the number of rows
// reported as inserted.
func (l *Loader) Load(ctx context.Context, rows [][]any) (int64, error) {
	if l.Table == "" || len(l.Columns) == 0 {
		return 0, fmt.Errorf("sink: table and columns are required")
	}
	log := l.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	lockTimeout := l.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = 10
	}

	conn, err := l.DB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("sink: acquire connection: %w", err)
	}
	defer conn.Close()

	key := lockKey(l.Table)
	got, err := getLock(ctx, conn, key, lockTimeout)
	if err != nil {
		return 0, fmt.Errorf("sink: GET_LOCK: %w", err)
	}
	if !got {
		return 0, fmt.Errorf("sink: another load into %s is active", l.Table)
	}
	defer func() {
		if err := releaseLock(context.Background(), conn, key); err != nil {
			log.WithError(err).WithField("table", l.Table).Warn("release lock failed")
		}
	}()

	n, err := chunkedExec(ctx, conn, l.Table, l.Columns, rows, l.Chunk)
	if err != nil {
		return n, err
	}
	log.WithFields(logrus.Fields{"table": l.Table, "rows": n}).Info("load complete")
	return n, nil
}

// DocumentRows turns documents into insert rows, one value per document field.
func DocumentRows(docs []export.Document) [][]any {
	rows := make([][]any, 0, len(docs))
	for _, d := range docs {
		r := make([]any, len(d.Values))
		for i, v := range d.Values {
			r[i] = v
		}
		rows = append(rows, r)
	}
	return rows
}

func chunkedExec(ctx context.Context, db execer, table string, cols []string, rows [][]any, chunk int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if chunk <= 0 {
		chunk = defaultChunk
	}
	var total int64
	for i := 0; i < len(rows); i += chunk {
		j := min(i+chunk, len(rows))
		n, err := bulkInsert(ctx, db, table, cols, rows[i:j])
		if err != nil {
			return total, fmt.Errorf("sink: insert rows %d..%d: %w", i, j-1, err)
		}
		total += n
	}
	return total, nil
}

func bulkInsert(ctx context.Context, db execer, table string, cols []string, rows [][]any) (int64, error) {
	args := make([]any, 0, len(rows)*len(cols))
	for i, r := range rows {
		if len(r) != len(cols) {
			return 0, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(cols))
		}
		args = append(args, r...)
	}
	res, err := db.ExecContext(ctx, insertQuery(table, cols, len(rows)), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func insertQuery(table string, cols []string, nrows int) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	pl := "(" + strings.TrimRight(strings.Repeat("?,", len(cols)), ",") + ")"
	valPlace := strings.TrimRight(strings.Repeat(pl+",", nrows), ",")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", quoteTable(table), strings.Join(quoted, ","), valPlace)
}

func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// quoteTable quotes "table" or "schema.table".
func quoteTable(s string) string {
	parts := strings.SplitN(s, ".", 2)
	for i := range parts {
		parts[i] = quoteIdent(parts[i])
	}
	return strings.Join(parts, ".")
}
