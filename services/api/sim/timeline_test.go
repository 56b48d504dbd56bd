package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeline(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	days, err := GenerateTimeline(rand.New(rand.NewSource(42)), start, end, DefaultRates)
	require.NoError(t, err)
	require.Len(t, days, 31)

	assert.Equal(t, start, days[0].Date)
	assert.Equal(t, end, days[len(days)-1].Date)

	for i, d := range days {
		assert.GreaterOrEqual(t, d.Alerts, 0)
		assert.GreaterOrEqual(t, d.HighPriority, 0)
		assert.GreaterOrEqual(t, d.CasesCreated, 0)
		if i > 0 {
			assert.Equal(t, 24*time.Hour, d.Date.Sub(days[i-1].Date))
		}
	}
}

func TestGenerateTimelineSingleDay(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	days, err := GenerateTimeline(rand.New(rand.NewSource(1)), day, day, DefaultRates)
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestGenerateTimelineInvertedRange(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := GenerateTimeline(rand.New(rand.NewSource(1)), start, end, DefaultRates)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateTimelineNegativeRates(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := GenerateTimeline(rand.New(rand.NewSource(1)), day, day, Rates{Alerts: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateTimelineDeterministic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	a, err := GenerateTimeline(rand.New(rand.NewSource(7)), start, end, DefaultRates)
	require.NoError(t, err)
	b, err := GenerateTimeline(rand.New(rand.NewSource(7)), start, end, DefaultRates)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPoissonSampler(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	assert.Equal(t, 0, poisson(rng, 0))

	// Sample mean of a Poisson(3) should land near 3.
	const n = 5000
	sum := 0
	for i := 0; i < n; i++ {
		sum += poisson(rng, 3)
	}
	mean := float64(sum) / n
	assert.InDelta(t, 3.0, mean, 0.15)
}
