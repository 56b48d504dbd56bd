package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/regions, /api/v1/ops
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Region endpoints - registry, simulated detections, map payloads
	regions := v1.Group("/regions")
	{
		regions.GET("", s.handleV1ListRegions)
		regions.GET("/:id", s.handleV1GetRegion)
		regions.GET("/:id/detections", s.handleV1RegionDetections)
		regions.GET("/:id/map", s.handleV1RegionMap)
		regions.GET("/:id/map/export", s.handleV1RegionMapExport)
	}

	// Ops endpoints - dashboard metric cards and activity timeline
	ops := v1.Group("/ops")
	{
		ops.GET("/summary", s.handleV1OpsSummary)
		ops.GET("/timeline", s.handleV1OpsTimeline)
	}
}

// apiVersionMiddleware tags responses with the API version.
func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
