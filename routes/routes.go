package routes

import (
	"go-afetyardim/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(siteService handlers.SiteService, runner handlers.IngestRunner, logger *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Afet Yardım!",
		})
	})

	sites := r.Group("/sites")
	{
		sites.GET("", func(c *gin.Context) { handlers.GetSites(c, siteService, logger) })
		sites.GET("/v2", func(c *gin.Context) { handlers.GetSitesV2(c, siteService, logger) })
		sites.GET("/nearby", func(c *gin.Context) { handlers.GetNearbySites(c, siteService, logger) })
		sites.GET("/:id", func(c *gin.Context) { handlers.GetSite(c, siteService, logger) })
		sites.POST("/:id/updates", func(c *gin.Context) { handlers.AddSiteUpdate(c, siteService, logger) })
	}

	api := r.Group("/api/ingest")
	{
		api.POST("/:city", func(c *gin.Context) { handlers.TriggerIngest(c, runner, logger) })
		api.POST("/:city/xlsx", func(c *gin.Context) { handlers.ImportWorkbook(c, runner, logger) })
	}

	return r
}
