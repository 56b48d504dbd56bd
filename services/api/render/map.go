// Package render turns detection batches into presentation artifacts: the
// per-marker popup fragment and the standalone Leaflet map document the
// dashboard exports. Data generation stays in sim; only formatting lives
// here.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/hreger/IllegalActScan/services/api/roi"
	"github.com/hreger/IllegalActScan/services/api/sim"
)

var popupTmpl = template.Must(template.New("popup").Parse(`<div class="detection-popup">
  <h4>{{.ActivityType}} Detected</h4>
  <p><b>Alert Level:</b> {{.AlertLevel}}</p>
  <p><b>Confidence:</b> {{printf "%.1f" .ConfidencePct}}%</p>
  <p><b>Location:</b> {{printf "%.4f" .Latitude}}, {{printf "%.4f" .Longitude}}</p>
  <p><b>Detection Time:</b> {{.DetectedAt.Format "2006-01-02 15:04"}}</p>
</div>`))

type popupData struct {
	sim.DetectionPoint
	ConfidencePct float64
}

// Popup renders the HTML fragment shown when a marker is clicked.
func Popup(p sim.DetectionPoint) (string, error) {
	var buf bytes.Buffer
	if err := popupTmpl.Execute(&buf, popupData{DetectionPoint: p, ConfidencePct: p.Confidence * 100}); err != nil {
		return "", fmt.Errorf("render popup: %w", err)
	}
	return buf.String(), nil
}

type marker struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
	Popup  string  `json:"popup"`
}

type pageData struct {
	Title     string
	CenterLat float64
	CenterLon float64
	MarkersJS template.JS
	BoundsJS  template.JS
}

var mapTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
  var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], 12);
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);

  var boundary = {{.BoundsJS}};
  L.polygon(boundary, {color: 'blue', weight: 3, fillOpacity: 0.1})
    .bindPopup('Operational Zone Boundary')
    .addTo(map);

  var markers = {{.MarkersJS}};
  markers.forEach(function (m) {
    L.circleMarker([m.lat, m.lon], {
      radius: m.radius,
      color: 'black',
      weight: 2,
      fillColor: m.color,
      fillOpacity: 0.7
    }).bindPopup(m.popup, {maxWidth: 250}).addTo(map);
  });
</script>
</body>
</html>
`))

// MapPage renders a self-contained Leaflet document showing the region
// boundary and one circle marker per detection.
func MapPage(region roi.Region, points []sim.DetectionPoint) (string, error) {
	markers := make([]marker, 0, len(points))
	for _, p := range points {
		popup, err := Popup(p)
		if err != nil {
			return "", err
		}
		markers = append(markers, marker{
			Lat:    p.Latitude,
			Lon:    p.Longitude,
			Color:  p.AlertLevel.Color(),
			Radius: sim.MarkerRadius(p.Confidence),
			Popup:  popup,
		})
	}

	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return "", fmt.Errorf("encode markers: %w", err)
	}
	boundsJSON, err := json.Marshal(region.Boundary())
	if err != nil {
		return "", fmt.Errorf("encode boundary: %w", err)
	}

	var buf bytes.Buffer
	err = mapTmpl.Execute(&buf, pageData{
		Title:     region.Name + " - Detection Map",
		CenterLat: region.CenterLat,
		CenterLon: region.CenterLon,
		MarkersJS: template.JS(markersJSON),
		BoundsJS:  template.JS(boundsJSON),
	})
	if err != nil {
		return "", fmt.Errorf("render map page: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}
