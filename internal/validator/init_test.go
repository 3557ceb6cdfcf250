package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsClock(t *testing.T) {
	for _, v := range []string{"00:00", "09:05", "12:00", "23:59"} {
		require.True(t, IsClock(v), v)
	}
	for _, v := range []string{"", "24:00", "9:05", "12:60", "12:5", "12-00", "1200", " 12:00"} {
		require.False(t, IsClock(v), v)
	}
}

func TestIsPriority(t *testing.T) {
	require.False(t, IsPriority(0))
	require.True(t, IsPriority(1))
	require.True(t, IsPriority(5))
	require.False(t, IsPriority(6))
}

func TestIsAge(t *testing.T) {
	require.True(t, IsAge(0))
	require.True(t, IsAge(42))
	require.False(t, IsAge(-1))
}

func TestIsUUIDAndEmail(t *testing.T) {
	require.True(t, IsUUID("9b2f1c4e-8a5d-4f7e-9c3b-2d1e0f6a7b8c"))
	require.False(t, IsUUID("123"))
	require.False(t, IsUUID(""))
	require.True(t, IsEmail("joao@teste.com"))
	require.False(t, IsEmail("joao"))
}
