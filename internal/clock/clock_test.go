package clock

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestNew(t *testing.T) {
	c := New("")
	require.NotNil(t, c)
	assert.NotEmpty(t, c.NodeID(), "NodeID should be generated")
	assert.Equal(t, int64(0), c.Last())

	c = New("device-1")
	assert.Equal(t, "device-1", c.NodeID())
}

func TestClock_Tick_FollowsWallClock(t *testing.T) {
	now := int64(1_000)
	c := New("d", WithNow(func() time.Time { return time.UnixMilli(now) }))

	assert.Equal(t, int64(1_000), c.Tick())
	now = 5_000
	assert.Equal(t, int64(5_000), c.Tick())
}

func TestClock_Tick_StrictlyIncreasing(t *testing.T) {
	// Часы стоят на месте: каждая метка всё равно больше предыдущей
	c := New("d", WithNow(fixedNow(1_000)))

	var previous int64
	for i := 0; i < 100; i++ {
		current := c.Tick()
		assert.Greater(t, current, previous, "Tick should always increase")
		previous = current
	}
}

func TestClock_Tick_WallClockGoesBack(t *testing.T) {
	now := int64(10_000)
	c := New("d", WithNow(func() time.Time { return time.UnixMilli(now) }))

	first := c.Tick()
	now = 2_000
	second := c.Tick()
	assert.Equal(t, first+1, second)
}

func TestClock_Update(t *testing.T) {
	tests := []struct {
		name     string
		remote   int64
		expected int64
	}{
		{"remote ahead", 50_000, 50_000},
		{"remote behind", 10, 1_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("d", WithNow(fixedNow(1_000)))
			c.Tick()

			assert.Equal(t, tt.expected, c.Update(tt.remote))
			assert.Greater(t, c.Tick(), tt.expected)
		})
	}
}

func TestClock_Restore(t *testing.T) {
	c := New("d", WithNow(fixedNow(1_000)))
	c.Restore(9_000)
	assert.Equal(t, int64(9_001), c.Tick())

	// Restore никогда не откатывает часы назад
	c.Restore(5)
	assert.Equal(t, int64(9_001), c.Last())
}

func TestClock_Next_OrderedIDs(t *testing.T) {
	c := New("d", WithNow(fixedNow(1_000)))

	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ts, id := c.Next()
		parsed, err := ulid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uint64(ts), parsed.Time())
		ids = append(ids, id)
	}

	assert.True(t, sort.StringsAreSorted(ids), "IDs must sort in issue order")
}

func TestClock_Concurrency(t *testing.T) {
	c := New("d", WithNow(fixedNow(1_000)))

	const goroutines = 10
	const ticks = 100

	var mu sync.Mutex
	seen := make(map[int64]struct{}, goroutines*ticks)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < ticks; j++ {
				ts := c.Tick()
				mu.Lock()
				seen[ts] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*ticks, "all timestamps should be unique")
}
