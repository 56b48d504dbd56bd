// Package sim generates synthetic illicit-activity detections for the
// dashboard. Nothing here touches real imagery or a model; every value is
// drawn from a caller-supplied random source so batches are reproducible
// under a fixed seed.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidArgument marks parameter validation failures. Callers can test
// for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// AlertLevel is the priority tier derived from a detection's confidence.
type AlertLevel string

const (
	AlertLow    AlertLevel = "LOW"
	AlertMedium AlertLevel = "MEDIUM"
	AlertHigh   AlertLevel = "HIGH"
)

// Confidence thresholds for the alert tiers, checked highest first.
const (
	highConfidenceThreshold   = 0.8
	mediumConfidenceThreshold = 0.6
)

// ActivityTypes is the fixed category set a detection is drawn from.
var ActivityTypes = []string{
	"Illegal Mining",
	"Deforestation",
	"Construction",
	"Excavation",
}

// DetectionPoint is one simulated observation.
type DetectionPoint struct {
	Latitude     float64    `json:"lat"`
	Longitude    float64    `json:"lon"`
	Confidence   float64    `json:"confidence"`
	ActivityType string     `json:"activity_type"`
	AlertLevel   AlertLevel `json:"alert_level"`
	DetectedAt   time.Time  `json:"detected_at"`
}

// Params configures one generation batch.
type Params struct {
	CenterLat     float64
	CenterLon     float64
	Count         int
	MinConfidence float64
	MaxConfidence float64
	LatStdDev     float64
	LonStdDev     float64
}

// Validate checks the batch parameters without consuming any randomness.
func (p Params) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidArgument, p.Count)
	}
	if p.MinConfidence <= 0 || p.MaxConfidence >= 1 {
		return fmt.Errorf("%w: confidence bounds must lie in (0,1), got [%v, %v)", ErrInvalidArgument, p.MinConfidence, p.MaxConfidence)
	}
	if p.MinConfidence >= p.MaxConfidence {
		return fmt.Errorf("%w: confidence bounds inverted: [%v, %v)", ErrInvalidArgument, p.MinConfidence, p.MaxConfidence)
	}
	if p.LatStdDev < 0 || p.LonStdDev < 0 {
		return fmt.Errorf("%w: jitter stddev must be non-negative, got lat=%v lon=%v", ErrInvalidArgument, p.LatStdDev, p.LonStdDev)
	}
	return nil
}

// Generate produces p.Count detections scattered around the center. Draw
// order per point is fixed (lat jitter, lon jitter, confidence, activity
// index) so a seeded rng yields an identical sequence on every call.
func Generate(rng *rand.Rand, p Params) ([]DetectionPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	points := make([]DetectionPoint, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		lat := p.CenterLat + rng.NormFloat64()*p.LatStdDev
		lon := p.CenterLon + rng.NormFloat64()*p.LonStdDev
		confidence := p.MinConfidence + rng.Float64()*(p.MaxConfidence-p.MinConfidence)
		activity := ActivityTypes[rng.Intn(len(ActivityTypes))]

		points = append(points, DetectionPoint{
			Latitude:     lat,
			Longitude:    lon,
			Confidence:   confidence,
			ActivityType: activity,
			AlertLevel:   ClassifyAlertLevel(confidence),
			DetectedAt:   now,
		})
	}
	return points, nil
}

// ClassifyAlertLevel maps a confidence score to its alert tier. First match
// wins: >=0.8 HIGH, >=0.6 MEDIUM, else LOW.
func ClassifyAlertLevel(confidence float64) AlertLevel {
	switch {
	case confidence >= highConfidenceThreshold:
		return AlertHigh
	case confidence >= mediumConfidenceThreshold:
		return AlertMedium
	default:
		return AlertLow
	}
}

// MarkerRadius maps confidence to the marker's visual radius in pixels.
// Strictly increasing, so higher-confidence points render larger.
func MarkerRadius(confidence float64) float64 {
	return 8 + confidence*10
}

// Color returns the map marker fill for the tier.
func (l AlertLevel) Color() string {
	switch l {
	case AlertHigh:
		return "red"
	case AlertMedium:
		return "orange"
	default:
		return "yellow"
	}
}

// CountBetween draws a batch size uniformly from [min, max).
func CountBetween(rng *rand.Rand, min, max int) (int, error) {
	if min < 0 || max <= min {
		return 0, fmt.Errorf("%w: count range [%d, %d) is empty or negative", ErrInvalidArgument, min, max)
	}
	return min + rng.Intn(max-min), nil
}
