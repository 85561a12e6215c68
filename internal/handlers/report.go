package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CaloriesByYear returns per-day totals and the required calories for the year.
func (h *ReportHandler) CaloriesByYear(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid year")
		return
	}

	report, err := h.reportService.YearlyReport(userID, year)
	if err != nil {
		if errors.Is(err, services.ErrInvalidYear) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalorieReport(report))
}
