package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalize(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		returning []string
		want      string
	}{
		{
			name:  "rebind only",
			query: "SELECT id FROM users WHERE (id=?)",
			want:  "SELECT id FROM users WHERE (id=$1)",
		},
		{
			name:      "with returning",
			query:     "UPDATE users SET name=? WHERE (id=?)",
			returning: []string{"id", "name"},
			want:      "UPDATE users SET name=$1 WHERE (id=$2) RETURNING id,name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := Finalize(tt.query, []interface{}{1, 2}, tt.returning)
			require.Equal(t, tt.want, got)
			require.Len(t, args, 2)
		})
	}
}
