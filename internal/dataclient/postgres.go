package dataclient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/joaobosco/lembretes/internal/config"
	"github.com/joaobosco/lembretes/internal/db"
	"github.com/joaobosco/lembretes/internal/pkg/dbutil"
)

type postgresClient struct {
	db *sqlx.DB
}

func init() {
	Register(config.DriverPostgres, createPostgresClient)
}

func createPostgresClient(ctx context.Context, cfg config.DatabaseConfig) (Client, error) {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.Migrate {
		if err := db.ApplyMigrations(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return NewPostgres(conn), nil
}

// NewPostgres talks SQL directly to the database behind the REST interface.
func NewPostgres(conn *sqlx.DB) Client {
	return &postgresClient{db: conn}
}

func (c *postgresClient) Select(ctx context.Context, q Query, dest interface{}) error {
	sqlStr, args, err := builder.BuildSelect(q.Table, whereWithOrder(q), q.Columns)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args, nil)
	if err := c.db.SelectContext(ctx, dest, sqlStr, args...); err != nil {
		return translatePostgres(q.Table, err)
	}
	return nil
}

func (c *postgresClient) SelectOne(ctx context.Context, q Query, dest interface{}) error {
	sqlStr, args, err := builder.BuildSelect(q.Table, whereWithOrder(q), q.Columns)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args, nil)
	if err := c.db.GetContext(ctx, dest, sqlStr, args...); err != nil {
		return translatePostgres(q.Table, err)
	}
	return nil
}

func (c *postgresClient) Insert(ctx context.Context, table string, values map[string]interface{}, returning []string, dest interface{}) error {
	sqlStr, args, err := builder.BuildInsert(table, []map[string]interface{}{values})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args, returning)
	if dest == nil || len(returning) == 0 {
		_, err = c.db.ExecContext(ctx, sqlStr, args...)
		return translatePostgres(table, err)
	}
	return translatePostgres(table, c.db.GetContext(ctx, dest, sqlStr, args...))
}

func (c *postgresClient) Update(ctx context.Context, q Query, values map[string]interface{}, dest interface{}) error {
	if len(q.Where) == 0 {
		return fmt.Errorf("update on %s without filter", q.Table)
	}
	sqlStr, args, err := builder.BuildUpdate(q.Table, foldWhere(q), values)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args, q.Columns)
	if dest == nil || len(q.Columns) == 0 {
		result, err := c.db.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return translatePostgres(q.Table, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errNoRows(q.Table)
		}
		return nil
	}
	return translatePostgres(q.Table, c.db.GetContext(ctx, dest, sqlStr, args...))
}

func (c *postgresClient) Delete(ctx context.Context, table string, where map[string]interface{}) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("delete on %s without filter", table)
	}
	sqlStr, args, err := builder.BuildDelete(table, where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args, nil)
	result, err := c.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, translatePostgres(table, err)
	}
	return result.RowsAffected()
}

func (c *postgresClient) Close() error {
	return c.db.Close()
}

func whereWithOrder(q Query) map[string]interface{} {
	where := foldWhere(q)
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		where["_orderby"] = q.OrderBy + " " + dir
	}
	return where
}

// foldWhere rewrites folded columns to lower(col) = lower(value).
func foldWhere(q Query) map[string]interface{} {
	where := make(map[string]interface{}, len(q.Where)+1)
	for k, v := range q.Where {
		if s, ok := v.(string); ok && q.folds(k) {
			where["lower("+k+")"] = strings.ToLower(s)
			continue
		}
		where[k] = v
	}
	return where
}

func translatePostgres(table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errNoRows(table)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		status := http.StatusInternalServerError
		switch string(pqErr.Code) {
		case CodeUniqueViolation:
			status = http.StatusConflict
		case CodeInvalidText:
			status = http.StatusBadRequest
		}
		return &Error{
			Status:  status,
			Code:    string(pqErr.Code),
			Message: pqErr.Message,
			Details: pqErr.Detail,
			Hint:    pqErr.Hint,
		}
	}
	return err
}
