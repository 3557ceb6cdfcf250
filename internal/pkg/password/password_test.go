package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("12345")
	require.NoError(t, err)
	require.NotEqual(t, "12345", hash)
	require.NoError(t, Compare(hash, "12345"))
	require.Error(t, Compare(hash, "54321"))
}

func TestCompareDummyAlwaysFails(t *testing.T) {
	require.Error(t, CompareDummy("lembretes-dummy-password"))
	require.Error(t, CompareDummy("anything"))
}

func TestHashLengthLimit(t *testing.T) {
	_, err := Hash(strings.Repeat("a", MaxBytes))
	require.NoError(t, err)

	_, err = Hash(strings.Repeat("a", MaxBytes+1))
	require.True(t, errors.Is(err, ErrTooLong))

	// multi-byte runes count by bytes
	_, err = Hash(strings.Repeat("ç", 37))
	require.True(t, errors.Is(err, ErrTooLong))
}
