// Package geo builds the GeoJSON payloads the map viewer consumes.
package geo

import (
	"time"

	"github.com/hreger/IllegalActScan/services/api/roi"
	"github.com/hreger/IllegalActScan/services/api/sim"
)

// FeatureCollection is a standard GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature with geometry and properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds the geometry type and coordinates. Coordinates is
// [lon, lat] for a Point and a ring list for a Polygon.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// DetectionFeature converts one detection into a Point feature carrying the
// marker styling contract: color from the alert tier, radius growing with
// confidence.
func DetectionFeature(p sim.DetectionPoint, region roi.Region) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{p.Longitude, p.Latitude},
		},
		Properties: map[string]any{
			"activity_type": p.ActivityType,
			"alert_level":   string(p.AlertLevel),
			"confidence":    p.Confidence,
			"marker_color":  p.AlertLevel.Color(),
			"marker_radius": sim.MarkerRadius(p.Confidence),
			"detected_at":   p.DetectedAt.Format(time.RFC3339),
			"inside_roi":    region.Contains(p.Latitude, p.Longitude),
		},
	}
}

// BoundaryFeature converts a region boundary into a closed Polygon feature.
func BoundaryFeature(region roi.Region) Feature {
	corners := region.Boundary()
	ring := make([][]float64, 0, len(corners)+1)
	for _, c := range corners {
		ring = append(ring, []float64{c[1], c[0]})
	}
	ring = append(ring, ring[0])

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{ring},
		},
		Properties: map[string]any{
			"region_id": region.ID,
			"name":      region.Name,
			"role":      "boundary",
		},
	}
}

// DetectionCollection bundles the region boundary and its detections into
// one collection, boundary first so viewers draw it underneath the markers.
func DetectionCollection(region roi.Region, points []sim.DetectionPoint) FeatureCollection {
	features := make([]Feature, 0, len(points)+1)
	features = append(features, BoundaryFeature(region))
	for _, p := range points {
		features = append(features, DetectionFeature(p, region))
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
