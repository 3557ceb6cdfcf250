package dataclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/joaobosco/lembretes/internal/config"
)

const restSchema = "public"

// restErrPattern matches the "(code) message" errors of the REST client.
var restErrPattern = regexp.MustCompile(`(?s)^\(([^)]*)\) (.*)$`)

type postgrestClient struct {
	client *postgrest.Client
}

func init() {
	Register(config.DriverPostgREST, createPostgRESTClient)
}

func createPostgRESTClient(_ context.Context, cfg config.DatabaseConfig) (Client, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("postgrest url and key are required")
	}
	return NewPostgREST(cfg.URL, cfg.Key, time.Duration(cfg.Timeout)*time.Second)
}

// NewPostgREST talks to the REST interface of a hosted postgres project.
// baseURL is the project URL; "/rest/v1" is appended. A positive timeout
// bounds the wait for response headers.
func NewPostgREST(baseURL, key string, timeout time.Duration) (Client, error) {
	client := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", restSchema, nil)
	if client.ClientError != nil {
		return nil, fmt.Errorf("postgrest client: %w", client.ClientError)
	}
	client.SetApiKey(key).SetAuthToken(key)
	if timeout > 0 {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.ResponseHeaderTimeout = timeout
		client.Transport.Parent = tr
	}
	return &postgrestClient{client: client}, nil
}

func (c *postgrestClient) Select(ctx context.Context, q Query, dest interface{}) error {
	fb := c.client.From(q.Table).Select(strings.Join(q.Columns, ","), "", false)
	applyFilters(fb, q)
	if q.OrderBy != "" {
		fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc, NullsFirst: q.Desc})
	}
	body, _, err := execute(ctx, q.Table, fb)
	if err != nil {
		return err
	}
	return decodeBody(q.Table, body, nil, dest)
}

func (c *postgrestClient) SelectOne(ctx context.Context, q Query, dest interface{}) error {
	fb := c.client.From(q.Table).Select(strings.Join(q.Columns, ","), "", false)
	applyFilters(fb, q)
	body, _, err := execute(ctx, q.Table, fb.Single())
	if err != nil {
		return err
	}
	return decodeBody(q.Table, body, nil, dest)
}

func (c *postgrestClient) Insert(ctx context.Context, table string, values map[string]interface{}, returning []string, dest interface{}) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", table, err)
	}
	if dest == nil || len(returning) == 0 {
		_, _, err := execute(ctx, table, c.client.From(table).Insert(json.RawMessage(payload), false, "", "minimal", ""))
		return err
	}
	fb := c.client.From(table).Insert(json.RawMessage(payload), false, "", "representation", "")
	body, _, err := execute(ctx, table, fb.Single())
	if err != nil {
		return err
	}
	return decodeBody(table, body, returning, dest)
}

func (c *postgrestClient) Update(ctx context.Context, q Query, values map[string]interface{}, dest interface{}) error {
	if len(q.Where) == 0 {
		return fmt.Errorf("update on %s without filter", q.Table)
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", q.Table, err)
	}
	fb := c.client.From(q.Table).Update(json.RawMessage(payload), "representation", "")
	applyFilters(fb, q)
	body, _, err := execute(ctx, q.Table, fb.Single())
	if err != nil {
		return err
	}
	return decodeBody(q.Table, body, q.Columns, dest)
}

func (c *postgrestClient) Delete(ctx context.Context, table string, where map[string]interface{}) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("delete on %s without filter", table)
	}
	fb := c.client.From(table).Delete("minimal", "exact")
	applyFilters(fb, Query{Table: table, Where: where})
	_, count, err := execute(ctx, table, fb)
	return count, err
}

func (c *postgrestClient) Close() error {
	if tr, ok := c.client.Transport.Parent.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
	return nil
}

func applyFilters(fb *postgrest.FilterBuilder, q Query) {
	keys := make([]string, 0, len(q.Where))
	for k := range q.Where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		value := fmt.Sprint(q.Where[k])
		// "*" is a wildcard for ilike and cannot be escaped.
		if q.folds(k) && !strings.Contains(value, "*") {
			fb.Ilike(k, likeEscaper.Replace(value))
			continue
		}
		fb.Eq(k, value)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// execute runs fb. The REST client has no context support, so ctx is only
// checked before the call.
func execute(ctx context.Context, table string, fb *postgrest.FilterBuilder) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	body, count, err := fb.Execute()
	if err != nil {
		return nil, 0, translateREST(table, err)
	}
	return body, count, nil
}

// decodeBody unmarshals body into dest keeping only columns; empty columns
// or "*" keep everything.
func decodeBody(table string, body []byte, columns []string, dest interface{}) error {
	if dest == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if len(columns) > 0 && !(len(columns) == 1 && columns[0] == "*") {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("decode %s response: %w", table, err)
		}
		picked := make(map[string]json.RawMessage, len(columns))
		for _, col := range columns {
			col = strings.TrimSpace(col)
			if v, ok := fields[col]; ok {
				picked[col] = v
			}
		}
		raw, err := json.Marshal(picked)
		if err != nil {
			return err
		}
		body = raw
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

// translateREST turns the "(code) message" errors of the REST client into
// *Error. Transport failures and unreadable error bodies are wrapped as is.
func translateREST(table string, err error) error {
	m := restErrPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return fmt.Errorf("postgrest %s: %w", table, err)
	}
	return &Error{
		Status:  restStatus(m[1]),
		Code:    m[1],
		Message: m[2],
	}
}

func restStatus(code string) int {
	switch code {
	case CodeNoRows:
		return http.StatusNotAcceptable
	case CodeUniqueViolation:
		return http.StatusConflict
	case CodeInvalidText:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
