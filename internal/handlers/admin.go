// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type AdminHandler struct {
	reportService *services.ReportService
	auditService  *services.AuditService
}

func NewAdminHandler(reportService *services.ReportService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
		auditService:  auditService,
	}
}

// GET /api/reports/summary?year=
func (h *AdminHandler) ReportSummary(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var year int
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 9999 {
			utils.ValidationErrorResponse(c, utils.FieldValidationError("year", "year", i18n.T(lang, i18n.KeyValidationInvalid, "year")))
			return
		}
		year = parsed
	}

	summary, err := h.reportService.Summary(c.Request.Context(), year)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, summary)
}

// GET /api/audit-logs?page=&limit=&action=&resource_type=
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page, _ := utils.PageFromQuery(c)
	filter := repository.AuditLogFilter{
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filter, page)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.NewPage(logs, total, page))
}
