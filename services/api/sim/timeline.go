package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DailyActivity is one day of aggregate alert counts for the timeline chart.
type DailyActivity struct {
	Date         time.Time `json:"date"`
	Alerts       int       `json:"alerts"`
	HighPriority int       `json:"high_priority"`
	CasesCreated int       `json:"cases_created"`
}

// Rates holds the Poisson means for each daily series.
type Rates struct {
	Alerts       float64
	HighPriority float64
	CasesCreated float64
}

// DefaultRates matches the dashboard's historical averages: roughly three
// alerts, one high-priority alert, and two cases per day.
var DefaultRates = Rates{Alerts: 3, HighPriority: 1, CasesCreated: 2}

// GenerateTimeline produces one DailyActivity per day from start through end
// inclusive. Counts are independent Poisson draws per series, in the order
// alerts, high-priority, cases.
func GenerateTimeline(rng *rand.Rand, start, end time.Time, rates Rates) ([]DailyActivity, error) {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if start.After(end) {
		return nil, fmt.Errorf("%w: timeline start %s after end %s", ErrInvalidArgument, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if rates.Alerts < 0 || rates.HighPriority < 0 || rates.CasesCreated < 0 {
		return nil, fmt.Errorf("%w: timeline rates must be non-negative", ErrInvalidArgument)
	}

	days := make([]DailyActivity, 0)
	for d := start; !d.After(end); d = d.Add(24 * time.Hour) {
		days = append(days, DailyActivity{
			Date:         d,
			Alerts:       poisson(rng, rates.Alerts),
			HighPriority: poisson(rng, rates.HighPriority),
			CasesCreated: poisson(rng, rates.CasesCreated),
		})
	}
	return days, nil
}

// poisson draws from a Poisson distribution via Knuth's multiplication
// method. Fine for the small means used here.
func poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	limit := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}
