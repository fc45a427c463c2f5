package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkstack/service-parking/internal/application"
	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/middleware"
	"github.com/parkstack/service-parking/internal/response"
)

// ReportHandler handles HTTP requests for admin revenue reports.
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes. Reports are admin only.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		reports.GET("/daily", h.Daily)
		reports.GET("/daily/details", h.DailyDetails)
	}
}

// parseDay reads the optional ?date=YYYY-MM-DD query, defaulting to
// today in UTC.
func parseDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

// Daily handles GET /api/v1/reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	report, err := h.service.Daily(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// DailyDetails handles GET /api/v1/reports/daily/details
func (h *ReportHandler) DailyDetails(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	report, err := h.service.DailyDetails(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}
