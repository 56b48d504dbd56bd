package http

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hreger/IllegalActScan/services/api/sim"
)

// Dashboard metric cards. Static mocks until a real evaluation pipeline
// exists to feed them.
var opsSummary = gin.H{
	"detection_accuracy": gin.H{"value": 87.3, "unit": "percent", "delta": 2.1},
	"active_alerts":      gin.H{"value": 12, "delta": 3},
	"cases_generated":    gin.H{"value": 47, "delta": 8},
}

// handleV1OpsSummary returns the dashboard metric cards
// GET /api/v1/ops/summary
func (s *Server) handleV1OpsSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": opsSummary,
		"meta": gin.H{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleV1OpsTimeline returns the simulated daily activity series for the
// timeline chart
// GET /api/v1/ops/timeline?start=2024-01-01T00:00:00Z&end=2024-01-31T00:00:00Z&seed=42
func (s *Server) handleV1OpsTimeline(c *gin.Context) {
	// Default window matches the chart's 31-day view.
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -30)

	if startStr := c.Query("start"); startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time format, expected RFC3339"})
			return
		}
		start = t
	}
	if endStr := c.Query("end"); endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end time format, expected RFC3339"})
			return
		}
		end = t
	}

	seed, err := s.seedFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return
	}
	rng := rand.New(rand.NewSource(seed))

	days, err := sim.GenerateTimeline(rng, start, end, sim.DefaultRates)
	if err != nil {
		if errors.Is(err, sim.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": days,
		"meta": gin.H{
			"days": len(days),
			"seed": seed,
		},
	})
}
