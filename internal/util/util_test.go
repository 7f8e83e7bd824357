package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewULID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate ULID %s", id)
		seen[id] = true
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestTimeToNullTime(t *testing.T) {
	assert.False(t, TimeToNullTime(time.Time{}).Valid)

	now := time.Now()
	nt := TimeToNullTime(now)
	assert.True(t, nt.Valid)
	assert.True(t, now.Equal(nt.Time))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 100, Percent(20, 20))
	assert.Equal(t, 50, Percent(10, 20))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(0, 0))
	assert.Equal(t, 0, Percent(5, 0))
}
