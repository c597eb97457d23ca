package controller

import (
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// PlatformStats aggregates platform-wide counters for the admin dashboard.
// @Summary Platform statistics
// @Tags Analytics
// @Security ApiKeyAuth
// @Router /api/admin/stats [get]
func (c *AnalyticsController) PlatformStats(ctx *gin.Context) {
	stats, err := c.analytics.PlatformStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
