package timeuuid

import (
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimeRoundTrip(t *testing.T) {
	ts := time.Date(2017, 6, 15, 0, 0, 0, 0, time.UTC)
	id := FromTime(ts)

	assert.Equal(t, uuid.Version(1), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
	assert.True(t, Time(id).Equal(ts), "embedded time %v != %v", Time(id), ts)
}

func TestFromTimeMicrosecondPrecision(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 123456000, time.UTC)
	assert.True(t, Time(FromTime(ts)).Equal(ts))
}

func TestFromTimeUniqueForSameInstant(t *testing.T) {
	ts := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[uuid.UUID]struct{})
	for i := 0; i < 1000; i++ {
		id := FromTime(ts)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestCompareOrdersByTimestamp(t *testing.T) {
	base := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for _, days := range []int{30, 1, 900, 0, 365} {
		ids = append(ids, FromTime(base.AddDate(0, 0, days)))
	}

	// Most recent first, the clustering order of trades_by_a_d.
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return Compare(b, a) })

	for i := 1; i < len(ids); i++ {
		assert.True(t, Time(ids[i-1]).After(Time(ids[i])),
			"ids not sorted descending at %d", i)
	}
	assert.Equal(t, 0, Compare(ids[0], ids[0]))
}
