package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type patch struct {
	Name Value[string] `json:"name"`
	Age  Value[int]    `json:"age"`
}

func TestValueUnmarshal(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"age":null}`), &p))
	require.False(t, p.Name.Set)
	require.True(t, p.Age.Set)
	require.True(t, p.Age.Null)
	require.Nil(t, p.Age.Ptr())

	p = patch{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"ana","age":31}`), &p))
	require.True(t, p.Name.Present())
	require.Equal(t, "ana", p.Name.Value)
	require.Equal(t, 31, *p.Age.Ptr())
}

func TestValueUnmarshalTypeMismatch(t *testing.T) {
	var p patch
	require.Error(t, json.Unmarshal([]byte(`{"age":"old"}`), &p))
}
