package handlers

import (
	"context"
	"errors"
	"net/http"

	"go-afetyardim/cronjobs"
	"go-afetyardim/ingestion"
	"go-afetyardim/sheets"
	"go-afetyardim/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IngestRunner runs ingestion for a configured city.
type IngestRunner interface {
	RunCity(ctx context.Context, city string) (*ingestion.Report, error)
	RunGrid(ctx context.Context, city string, grid types.Grid) (*ingestion.Report, error)
}

// TriggerIngest runs the city's sheet now instead of waiting for the cron job.
func TriggerIngest(c *gin.Context, runner IngestRunner, logger *zap.Logger) {
	city := c.Param("city")
	report, err := runner.RunCity(c.Request.Context(), city)
	if errors.Is(err, cronjobs.ErrUnknownCity) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("Manual ingestion failed", zap.String("city", city), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ingestion failed", "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ImportWorkbook ingests an uploaded .xlsx export (form field "file", optional
// "sheet") with the city's sheet settings.
func ImportWorkbook(c *gin.Context, runner IngestRunner, logger *zap.Logger) {
	city := c.Param("city")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer f.Close()

	grid, err := sheets.ReadWorkbook(f, c.PostForm("sheet"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := runner.RunGrid(c.Request.Context(), city, grid)
	if errors.Is(err, cronjobs.ErrUnknownCity) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("Workbook ingestion failed", zap.String("city", city), zap.String("file", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingestion failed", "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}
