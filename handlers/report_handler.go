package handlers

import (
	"net/http"

	"pubregistry/models"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Report serves the aggregate view over the same filter surface as the list
// endpoint, minus pagination.
func (h *ReportHandler) Report(c *gin.Context) {
	userID, _, personID := actorFrom(c)

	var params models.PublicationSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Mine {
		params.OwnerID = userID
	}
	if params.LeadOnly {
		params.LeadPersonID = personID
	}

	report, err := h.reportService.Report(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
