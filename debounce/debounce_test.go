package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRapidUpdatesEmitOnlyLastValue(t *testing.T) {
	var mu sync.Mutex
	var emitted []string

	d := New(30*time.Millisecond, func(v string) {
		mu.Lock()
		emitted = append(emitted, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Update("1")
	d.Update("12")
	d.Update("123")

	require.True(t, d.Pending())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(emitted) == 1 && emitted[0] == "123"
	}, time.Second, 5*time.Millisecond)

	require.False(t, d.Pending())
	require.Equal(t, "123", d.Settled())
}

func TestEachQuietPeriodEmitsOnce(t *testing.T) {
	var mu sync.Mutex
	var emitted []string

	d := New(20*time.Millisecond, func(v string) {
		mu.Lock()
		emitted = append(emitted, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Update("a")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(emitted) == 1
	}, time.Second, 5*time.Millisecond)

	d.Update("b")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(emitted) == 2 && emitted[1] == "b"
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateAtTimerExpiryWaitsFullQuietPeriod(t *testing.T) {
	const quiet = 2 * time.Millisecond

	// An update that lands exactly as the previous timer expires must
	// not ride that timer's callback: the new value gets its own full
	// quiet period. Tight timings to hit the expiry window often.
	for i := 0; i < 200; i++ {
		var mu sync.Mutex
		emittedAt := map[string]time.Time{}

		d := New(quiet, func(v string) {
			mu.Lock()
			emittedAt[v] = time.Now()
			mu.Unlock()
		})

		d.Update("a")
		time.Sleep(quiet)
		updatedAt := time.Now()
		d.Update("b")

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return !emittedAt["b"].IsZero()
		}, time.Second, time.Millisecond)

		mu.Lock()
		elapsed := emittedAt["b"].Sub(updatedAt)
		mu.Unlock()
		require.GreaterOrEqual(t, elapsed, quiet,
			"iteration %d: %q emitted %v after its update", i, "b", elapsed)

		d.Stop()
	}
}

func TestStopCancelsPendingEmission(t *testing.T) {
	var mu sync.Mutex
	var emitted []string

	d := New(20*time.Millisecond, func(v string) {
		mu.Lock()
		emitted = append(emitted, v)
		mu.Unlock()
	})

	d.Update("never")
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Empty(t, emitted)
	require.False(t, d.Pending())
}

func TestUpdateAfterStopIsIgnored(t *testing.T) {
	d := New(10*time.Millisecond, func(string) {
		t.Error("emit after Stop")
	})
	d.Stop()
	d.Update("x")

	time.Sleep(30 * time.Millisecond)
}
