package http

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hreger/IllegalActScan/services/api/geo"
	"github.com/hreger/IllegalActScan/services/api/render"
	"github.com/hreger/IllegalActScan/services/api/roi"
	"github.com/hreger/IllegalActScan/services/api/sim"
)

// handleV1RegionMap returns the region boundary and a detection batch as a
// GeoJSON feature collection
// GET /api/v1/regions/:id/map?count=10&seed=42
func (s *Server) handleV1RegionMap(c *gin.Context) {
	region, points, seed, ok := s.mapBatch(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": geo.DetectionCollection(region, points),
		"meta": gin.H{
			"region_id":    region.ID,
			"count":        len(points),
			"seed":         seed,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleV1RegionMapExport returns a standalone Leaflet HTML document, the
// dashboard's downloadable map artifact
// GET /api/v1/regions/:id/map/export?count=10&seed=42
func (s *Server) handleV1RegionMapExport(c *gin.Context) {
	region, points, _, ok := s.mapBatch(c)
	if !ok {
		return
	}

	page, err := render.MapPage(region, points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="detection_map.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// mapBatch resolves the region and generates the detection batch shared by
// the map endpoints. It writes the error response itself when ok is false.
func (s *Server) mapBatch(c *gin.Context) (roi.Region, []sim.DetectionPoint, int64, bool) {
	region, found := roi.Lookup(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return roi.Region{}, nil, 0, false
	}

	seed, err := s.seedFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return roi.Region{}, nil, 0, false
	}
	rng := rand.New(rand.NewSource(seed))

	points, err := s.generateBatch(c, rng, region)
	if err != nil {
		if errors.Is(err, sim.ErrInvalidArgument) || errors.Is(err, errBadQueryParam) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return roi.Region{}, nil, 0, false
	}

	return region, points, seed, true
}
