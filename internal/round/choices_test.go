package round

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for table := 2; table <= 12; table++ {
		for m := 1; m <= 12; m++ {
			correct := table * m
			got := NumericChoices(rng, correct, 4, 10)
			require.Len(t, got, 4)

			seen := map[int]bool{}
			found := 0
			for _, v := range got {
				assert.Greater(t, v, 0)
				assert.False(t, seen[v], "duplicate %d in %v", v, got)
				seen[v] = true
				if v == correct {
					found++
				}
			}
			assert.Equal(t, 1, found, "exactly one correct value in %v", got)
		}
	}
}

func TestNumericChoicesNarrowRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// correct+[-1, 1) holds only one usable distractor; the rest are filled.
	got := NumericChoices(rng, 1, 4, 1)
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, got)
}

func TestSampleChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pool := []string{"red", "blue", "yellow", "green", "orange"}

	got := SampleChoices(rng, "green", pool, 3)
	require.Len(t, got, 3)
	assert.Contains(t, got, "green")
	seen := map[string]bool{}
	for _, c := range got {
		assert.False(t, seen[c])
		seen[c] = true
	}

	all := SampleChoices(rng, "red", pool, 10)
	assert.ElementsMatch(t, pool, all)
}

func TestShufflePermutes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := []int{1, 2, 3, 4, 5, 6}
	Shuffle(rng, s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, s)
}

func TestTimersOrder(t *testing.T) {
	var tm Timers
	var got []string
	tm.After(2*time.Second, func() { got = append(got, "b") })
	tm.After(time.Second, func() {
		got = append(got, "a")
		tm.After(500*time.Millisecond, func() { got = append(got, "a2") })
	})
	tm.After(2*time.Second, func() { got = append(got, "c") })

	tm.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, got)
	assert.Equal(t, 2*time.Second, tm.Now())
	assert.Equal(t, 0, tm.Pending())
}

func TestTimersCancel(t *testing.T) {
	var tm Timers
	fired := false
	id := tm.After(time.Second, func() { fired = true })
	assert.True(t, tm.Cancel(id))
	assert.False(t, tm.Cancel(id))

	tm.After(time.Second, func() { fired = true })
	tm.CancelAll()
	tm.Advance(time.Minute)
	assert.False(t, fired)
}
