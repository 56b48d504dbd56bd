package http

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hreger/IllegalActScan/services/api/roi"
	"github.com/hreger/IllegalActScan/services/api/sim"
)

// handleV1ListRegions returns all registered operational regions
// GET /api/v1/regions
func (s *Server) handleV1ListRegions(c *gin.Context) {
	regions := roi.All()

	c.JSON(http.StatusOK, gin.H{
		"data": regions,
		"meta": gin.H{
			"count":   len(regions),
			"default": s.cfg.DefaultRegion,
		},
	})
}

// handleV1GetRegion returns one region with its boundary polygon
// GET /api/v1/regions/:id
func (s *Server) handleV1GetRegion(c *gin.Context) {
	region, ok := roi.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"region":   region,
			"boundary": region.Boundary(),
		},
	})
}

// handleV1RegionDetections returns a fresh simulated detection batch
// GET /api/v1/regions/:id/detections?count=10&seed=42&min_confidence=0.5
func (s *Server) handleV1RegionDetections(c *gin.Context) {
	region, ok := roi.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return
	}

	seed, err := s.seedFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return
	}
	rng := rand.New(rand.NewSource(seed))

	points, err := s.generateBatch(c, rng, region)
	if err != nil {
		if errors.Is(err, sim.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, errBadQueryParam) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if minStr := c.Query("min_confidence"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil || min < 0 || min >= 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_confidence"})
			return
		}
		filtered := points[:0]
		for _, p := range points {
			if p.Confidence >= min {
				filtered = append(filtered, p)
			}
		}
		points = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"data": points,
		"meta": gin.H{
			"region_id":    region.ID,
			"count":        len(points),
			"seed":         seed,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// errBadQueryParam marks malformed request parameters that never reach the
// simulator's own validation.
var errBadQueryParam = errors.New("bad query parameter")

// seedFromQuery picks the batch seed: request override, configured seed, or
// the clock.
func (s *Server) seedFromQuery(c *gin.Context) (int64, error) {
	if seedStr := c.Query("seed"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return 0, err
		}
		return seed, nil
	}
	if s.cfg.Seed != 0 {
		return s.cfg.Seed, nil
	}
	return time.Now().UnixNano(), nil
}

// generateBatch draws the batch size (from the query or the configured
// range) and runs the simulator with the region center.
func (s *Server) generateBatch(c *gin.Context, rng *rand.Rand, region roi.Region) ([]sim.DetectionPoint, error) {
	var count int
	if countStr := c.Query("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, errBadQueryParam
		}
		count = parsed
	} else {
		drawn, err := sim.CountBetween(rng, s.cfg.MinCount, s.cfg.MaxCount)
		if err != nil {
			return nil, err
		}
		count = drawn
	}

	return sim.Generate(rng, sim.Params{
		CenterLat:     region.CenterLat,
		CenterLon:     region.CenterLon,
		Count:         count,
		MinConfidence: s.cfg.MinConfidence,
		MaxConfidence: s.cfg.MaxConfidence,
		LatStdDev:     s.cfg.LatJitter,
		LonStdDev:     s.cfg.LonJitter,
	})
}
