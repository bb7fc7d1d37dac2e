package api

import (
	"net/http"

	"bond-valuation/internal/api/handlers"
	"bond-valuation/internal/api/middleware"
	"bond-valuation/internal/config"
	"bond-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires middleware and routes. Mode selection (gin.SetMode) is
// left to the caller.
func NewRouter(cfg *config.ServerConfig, engine *valuation.Engine, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger(logger))

	valuationHandler := handlers.NewValuationHandler(engine, cfg.Server.BondDir, logger)
	bondHandler := handlers.NewBondHandler(engine, cfg.Server.BondDir, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/valuation", valuationHandler.Value)
		api.POST("/valuation/compare", valuationHandler.Compare)
		api.GET("/sensitivity", valuationHandler.Sensitivity)

		api.GET("/bonds", bondHandler.ListBonds)
		api.GET("/bonds/rank", bondHandler.RankBonds)
		api.GET("/inputs", handlers.ListInputs)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
