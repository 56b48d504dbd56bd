// Package roi holds the static registry of operational regions the
// dashboard can monitor. Each region is a center point plus a fixed-offset
// rectangular boundary; there is no dynamic ROI management.
package roi

import "github.com/golang/geo/s2"

// Boundary offsets from the region center, in degrees.
const (
	boundaryLatOffset = 0.03
	boundaryLonOffset = 0.04
)

// Region is one named operational area.
type Region struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

var regions = []Region{
	{ID: "OPERATIONAL_ZONE_001", Name: "Operational Zone 001", CenterLat: 40.0155, CenterLon: -105.2705},
	{ID: "BORDER_SECTOR_ALPHA", Name: "Border Sector Alpha", CenterLat: 31.7619, CenterLon: -106.4850},
	{ID: "MINING_CONCESSION_X", Name: "Mining Concession X", CenterLat: -6.8470, CenterLon: -50.0520},
	{ID: "PROTECTED_FOREST_Y", Name: "Protected Forest Y", CenterLat: -3.4653, CenterLon: -62.2159},
}

// All returns the registered regions in a stable order.
func All() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Lookup finds a region by its identifier.
func Lookup(id string) (Region, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Default returns the region selected when a caller names none.
func Default() Region {
	return regions[0]
}

// Boundary returns the four corner coordinates of the region's boundary
// polygon as [lat, lon] pairs, clockwise from the northwest corner.
func (r Region) Boundary() [][2]float64 {
	return [][2]float64{
		{r.CenterLat + boundaryLatOffset, r.CenterLon - boundaryLonOffset},
		{r.CenterLat + boundaryLatOffset, r.CenterLon + boundaryLonOffset},
		{r.CenterLat - boundaryLatOffset, r.CenterLon + boundaryLonOffset},
		{r.CenterLat - boundaryLatOffset, r.CenterLon - boundaryLonOffset},
	}
}

// Rect returns the boundary as an s2 lat/lng rectangle.
func (r Region) Rect() s2.Rect {
	rect := s2.EmptyRect()
	for _, corner := range r.Boundary() {
		rect = rect.AddPoint(s2.LatLngFromDegrees(corner[0], corner[1]))
	}
	return rect
}

// Contains reports whether a point falls inside the region boundary.
// Jittered detections can land outside it; the map flags those.
func (r Region) Contains(lat, lon float64) bool {
	return r.Rect().ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}
