package dataclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joaobosco/lembretes/internal/config"
)

type row = map[string]interface{}

// memoryClient keeps tables in process. Rows are stored JSON-normalised so
// filters and results behave like the REST interface.
type memoryClient struct {
	mu      sync.RWMutex
	tables  map[string][]row
	uniques map[string][]string
}

type MemoryOption func(*memoryClient)

// WithUnique rejects writes that would duplicate a non-null value of column.
func WithUnique(table, column string) MemoryOption {
	return func(c *memoryClient) {
		c.uniques[table] = append(c.uniques[table], column)
	}
}

func init() {
	Register(config.DriverMemory, func(_ context.Context, _ config.DatabaseConfig) (Client, error) {
		return NewMemory(WithUnique("users", "email")), nil
	})
}

func NewMemory(opts ...MemoryOption) Client {
	c := &memoryClient{
		tables:  map[string][]row{},
		uniques: map[string][]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *memoryClient) Select(_ context.Context, q Query, dest interface{}) error {
	where, err := normalize(q.Where)
	if err != nil {
		return err
	}
	matched := c.snapshot(q, where)
	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i][q.OrderBy], matched[j][q.OrderBy])
			if q.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	out := make([]row, 0, len(matched))
	for _, r := range matched {
		out = append(out, project(r, q.Columns))
	}
	return decode(out, dest)
}

func (c *memoryClient) SelectOne(_ context.Context, q Query, dest interface{}) error {
	where, err := normalize(q.Where)
	if err != nil {
		return err
	}
	matched := c.snapshot(q, where)
	if len(matched) != 1 {
		return noRowsOf(q.Table, len(matched))
	}
	return decode(project(matched[0], q.Columns), dest)
}

func (c *memoryClient) Insert(_ context.Context, table string, values map[string]interface{}, returning []string, dest interface{}) error {
	r, err := normalize(values)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnique(table, r, nil); err != nil {
		return err
	}
	c.tables[table] = append(c.tables[table], r)
	if dest == nil || len(returning) == 0 {
		return nil
	}
	return decode(project(r, returning), dest)
}

func (c *memoryClient) Update(_ context.Context, q Query, values map[string]interface{}, dest interface{}) error {
	if len(q.Where) == 0 {
		return fmt.Errorf("update on %s without filter", q.Table)
	}
	where, err := normalize(q.Where)
	if err != nil {
		return err
	}
	changes, err := normalize(values)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.match(q, where)
	if len(idx) != 1 {
		return noRowsOf(q.Table, len(idx))
	}
	target := c.tables[q.Table][idx[0]]
	candidate := make(row, len(target)+len(changes))
	for k, v := range target {
		candidate[k] = v
	}
	for k, v := range changes {
		candidate[k] = v
	}
	if err := c.checkUnique(q.Table, candidate, target); err != nil {
		return err
	}
	// Rows are replaced, never mutated in place.
	c.tables[q.Table][idx[0]] = candidate
	if dest == nil {
		return nil
	}
	return decode(project(candidate, q.Columns), dest)
}

func (c *memoryClient) Delete(_ context.Context, table string, where map[string]interface{}) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("delete on %s without filter", table)
	}
	filter, err := normalize(where)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.tables[table][:0]
	var removed int64
	for _, r := range c.tables[table] {
		if matches(r, filter, nil) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	c.tables[table] = kept
	return removed, nil
}

func (c *memoryClient) Close() error {
	return nil
}

// match returns the positions of the matching rows; callers hold the lock.
func (c *memoryClient) match(q Query, where row) []int {
	out := make([]int, 0)
	for i, r := range c.tables[q.Table] {
		if matches(r, where, q.folds) {
			out = append(out, i)
		}
	}
	return out
}

// snapshot copies the matching rows under the read lock.
func (c *memoryClient) snapshot(q Query, where row) []row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := c.tables[q.Table]
	out := make([]row, 0)
	for _, i := range c.match(q, where) {
		out = append(out, project(rows[i], nil))
	}
	return out
}

func (c *memoryClient) checkUnique(table string, candidate, self row) error {
	for _, column := range c.uniques[table] {
		value, ok := candidate[column]
		if !ok || value == nil {
			continue
		}
		for _, existing := range c.tables[table] {
			if self != nil && reflect.ValueOf(existing).Pointer() == reflect.ValueOf(self).Pointer() {
				continue
			}
			if reflect.DeepEqual(existing[column], value) {
				return &Error{
					Status:  http.StatusConflict,
					Code:    CodeUniqueViolation,
					Message: fmt.Sprintf("duplicate key value violates unique constraint \"%s_%s_key\"", table, column),
				}
			}
		}
	}
	return nil
}

func noRowsOf(table string, n int) error {
	if n == 0 {
		return errNoRows(table)
	}
	return &Error{
		Status:  http.StatusNotAcceptable,
		Code:    CodeNoRows,
		Message: "JSON object requested, multiple (or no) rows returned",
		Details: fmt.Sprintf("The result contains %d rows from %s", n, table),
	}
}

func matches(r, where row, folds func(string) bool) bool {
	for k, want := range where {
		if folds != nil && folds(k) {
			got, ok1 := r[k].(string)
			ws, ok2 := want.(string)
			if ok1 && ok2 && strings.EqualFold(got, ws) {
				continue
			}
		}
		if !reflect.DeepEqual(r[k], want) {
			return false
		}
	}
	return true
}

func project(r row, columns []string) row {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		out := make(row, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	out := make(row, len(columns))
	for _, col := range columns {
		out[strings.TrimSpace(col)] = r[strings.TrimSpace(col)]
	}
	return out
}

func normalize(values map[string]interface{}) (row, error) {
	out := row{}
	if len(values) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return out, nil
}

func decode(src interface{}, dest interface{}) error {
	if dest == nil {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	at, aErr := time.Parse(time.RFC3339Nano, as)
	bt, bErr := time.Parse(time.RFC3339Nano, bs)
	if aErr == nil && bErr == nil {
		return at.Compare(bt)
	}
	return strings.Compare(as, bs)
}
