package sink

import (
	"context"
	"database/sql"
)

// GET_LOCK is bound to the session, so both calls must run on the same *sql.Conn.

func getLock(ctx context.Context, conn *sql.Conn, key string, timeoutSeconds int) (bool, error) {
	var res sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", key, timeoutSeconds).Scan(&res); err != nil {
		return false, err
	}
	return res.Valid && res.Int64 == 1, nil
}

func releaseLock(ctx context.Context, conn *sql.Conn, key string) error {
	_, err := conn.ExecContext(ctx, "SELECT RELEASE_LOCK(?)", key)
	return err
}

func lockKey(table string) string {
	return "rowmap_load_" + table
}
