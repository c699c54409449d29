package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	exportService    services.ExportService
}

func NewDashboardHandler(dashboardService services.DashboardService, exportService services.ExportService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

func (h *DashboardHandler) PatientDashboard(c *gin.Context) {
	user, _ := CurrentUser(c)

	resp, err := h.dashboardService.PatientDashboard(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) DoctorDashboard(c *gin.Context) {
	user, _ := CurrentUser(c)

	resp, err := h.dashboardService.DoctorDashboard(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSchedule streams the doctor's schedule as an .xlsx download.
func (h *DashboardHandler) ExportSchedule(c *gin.Context) {
	h.LogRequest(c, "Exporting schedule")
	user, _ := CurrentUser(c)

	data, filename, err := h.exportService.DoctorSchedule(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
