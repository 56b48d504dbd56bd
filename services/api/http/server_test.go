package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hreger/IllegalActScan/services/api/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:          8080,
		MinCount:      5,
		MaxCount:      15,
		MinConfidence: 0.3,
		MaxConfidence: 0.95,
		LatJitter:     0.02,
		LonJitter:     0.03,
		DefaultRegion: "OPERATIONAL_ZONE_001",
	}
}

func doRequest(t *testing.T, srv *Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())
	w := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestV1ListRegions(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())
	w := doRequest(t, srv, http.MethodGet, "/api/v1/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1", w.Header().Get("X-API-Version"))

	body := decodeBody(t, w)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 4, meta["count"])
	assert.Equal(t, "OPERATIONAL_ZONE_001", meta["default"])
}

func TestV1GetRegion(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/MINING_CONCESSION_X", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Len(t, data["boundary"].([]any), 4)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/regions/NO_SUCH_ZONE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestV1RegionDetections(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	t.Run("explicit count and seed", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=10&seed=42", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].([]any)
		require.Len(t, data, 10)

		first := data[0].(map[string]any)
		conf := first["confidence"].(float64)
		assert.GreaterOrEqual(t, conf, 0.3)
		assert.Less(t, conf, 0.95)
		assert.Contains(t, []any{"LOW", "MEDIUM", "HIGH"}, first["alert_level"])

		meta := body["meta"].(map[string]any)
		assert.EqualValues(t, 10, meta["count"])
		assert.EqualValues(t, 42, meta["seed"])
	})

	t.Run("seeded requests are reproducible", func(t *testing.T) {
		a := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=10&seed=42", nil)
		b := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=10&seed=42", nil)
		require.Equal(t, http.StatusOK, a.Code)
		require.Equal(t, http.StatusOK, b.Code)

		aData := decodeBody(t, a)["data"].([]any)
		bData := decodeBody(t, b)["data"].([]any)
		require.Len(t, bData, len(aData))
		for i := range aData {
			ap := aData[i].(map[string]any)
			bp := bData[i].(map[string]any)
			assert.Equal(t, ap["lat"], bp["lat"])
			assert.Equal(t, ap["lon"], bp["lon"])
			assert.Equal(t, ap["confidence"], bp["confidence"])
			assert.Equal(t, ap["activity_type"], bp["activity_type"])
		}
	})

	t.Run("count drawn from configured range when absent", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?seed=7", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].([]any)
		assert.GreaterOrEqual(t, len(data), 5)
		assert.Less(t, len(data), 15)
	})

	t.Run("zero count returns empty batch", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=0&seed=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeBody(t, w)["data"])
	})

	t.Run("negative count is a bad request", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed parameters are bad requests", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=abc",
			"/api/v1/regions/OPERATIONAL_ZONE_001/detections?seed=abc",
			"/api/v1/regions/OPERATIONAL_ZONE_001/detections?min_confidence=2",
			"/api/v1/regions/OPERATIONAL_ZONE_001/detections?min_confidence=abc",
		} {
			w := doRequest(t, srv, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})

	t.Run("min_confidence filters the batch", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/detections?count=20&seed=42&min_confidence=0.8", nil)
		require.Equal(t, http.StatusOK, w.Code)

		for _, item := range decodeBody(t, w)["data"].([]any) {
			p := item.(map[string]any)
			assert.GreaterOrEqual(t, p["confidence"].(float64), 0.8)
			assert.Equal(t, "HIGH", p["alert_level"])
		}
	})

	t.Run("unknown region", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/NO_SUCH_ZONE/detections", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestV1RegionMap(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/map?count=6&seed=42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	fc := body["data"].(map[string]any)
	assert.Equal(t, "FeatureCollection", fc["type"])

	features := fc["features"].([]any)
	require.Len(t, features, 7)

	boundary := features[0].(map[string]any)
	assert.Equal(t, "Polygon", boundary["geometry"].(map[string]any)["type"])

	marker := features[1].(map[string]any)
	props := marker["properties"].(map[string]any)
	assert.Contains(t, props, "marker_color")
	assert.Contains(t, props, "marker_radius")
	assert.Contains(t, props, "inside_roi")
}

func TestV1RegionMapExport(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	w := doRequest(t, srv, http.MethodGet, "/api/v1/regions/OPERATIONAL_ZONE_001/map/export?count=5&seed=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "detection_map.html")
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, w.Body.String(), "L.circleMarker")
}

func TestV1OpsSummary(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	w := doRequest(t, srv, http.MethodGet, "/api/v1/ops/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	accuracy := data["detection_accuracy"].(map[string]any)
	assert.EqualValues(t, 87.3, accuracy["value"])
	assert.EqualValues(t, 12, data["active_alerts"].(map[string]any)["value"])
	assert.EqualValues(t, 47, data["cases_generated"].(map[string]any)["value"])
}

func TestV1OpsTimeline(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	t.Run("explicit window", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/ops/timeline?start=2024-01-01T00:00:00Z&end=2024-01-31T00:00:00Z&seed=42", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Len(t, body["data"].([]any), 31)
		assert.EqualValues(t, 31, body["meta"].(map[string]any)["days"])
	})

	t.Run("default trailing window", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/ops/timeline?seed=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["data"].([]any), 31)
	})

	t.Run("inverted window", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/ops/timeline?start=2024-02-01T00:00:00Z&end=2024-01-01T00:00:00Z", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed timestamps", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/ops/timeline?start=notatime", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBearerAuth(t *testing.T) {
	cfg := testConfig()
	cfg.BearerToken = "sekrit"
	srv := New(cfg, zerolog.Nop())

	w := doRequest(t, srv, http.MethodGet, "/api/v1/regions", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/regions", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/regions", map[string]string{"Authorization": "Bearer sekrit"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := New(testConfig(), zerolog.Nop())

	w := doRequest(t, srv, http.MethodOptions, "/api/v1/regions", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
