package invoicing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISODateConverter(t *testing.T) {
	conv := NewISODateConverter()

	t.Run("renders remote dialect with offset", func(t *testing.T) {
		loc := time.FixedZone("CET", 3600)
		ts := time.Date(2027, 2, 22, 0, 0, 0, 0, loc)
		assert.Equal(t, "2027-02-22T00:00:00.000+01:00", conv.ToRemoteFormat(ts))
	})

	t.Run("round-trips a remote timestamp", func(t *testing.T) {
		parsed, err := conv.FromRemoteFormat("2026-02-20T09:15:30.500+01:00")
		require.NoError(t, err)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, 9, parsed.Hour())
		assert.Equal(t, 500000000, parsed.Nanosecond())
		assert.Equal(t, "2026-02-20T09:15:30.500+01:00", conv.ToRemoteFormat(parsed))
	})

	t.Run("falls back to plain RFC 3339", func(t *testing.T) {
		parsed, err := conv.FromRemoteFormat("2026-02-20T09:15:30+01:00")
		require.NoError(t, err)
		assert.Equal(t, 15, parsed.Minute())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := conv.FromRemoteFormat("20.02.2026")
		assert.Error(t, err)
	})
}

func TestFormatLocal(t *testing.T) {
	ts := time.Date(2026, 2, 20, 9, 15, 30, 0, time.UTC)
	assert.Equal(t, "2026-02-20 09:15:30", FormatLocal(ts))
}
