package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/api/handlers"
	"github.com/careerlens/careerlens/internal/api/middleware"
)

type Deps struct {
	Discovery *handlers.DiscoveryHandler
	Profile   *handlers.ProfileHandler
	Analysis  *handlers.AnalysisHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/discovery/submit", d.Discovery.Submit)
	auth.GET("/submissions/:id", d.Discovery.Status)

	auth.GET("/profile/latest", d.Profile.Latest)

	auth.GET("/analysis/latest", d.Analysis.Latest)
	auth.POST("/analysis/retry", d.Analysis.Retry)
}
