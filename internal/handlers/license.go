// internal/handlers/license.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/licensing"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

// GET /api/licenses?districts=<uuid>&status=<status>[&page=&limit=&sort=&order=]
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var filter repository.LicenseFilter
	if district := strings.TrimSpace(c.Query("districts")); district != "" {
		id, err := uuid.Parse(district)
		if err != nil {
			utils.ValidationErrorResponse(c, utils.FieldValidationError("districts", "uuid", i18n.T(lang, i18n.KeyValidationInvalid, "districts")))
			return
		}
		filter.DistrictID = &id
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		parsed, err := licensing.ParseLicenseStatus(strings.ToUpper(status))
		if err != nil {
			utils.ValidationErrorResponse(c, utils.FieldValidationError("status", "license_status", i18n.T(lang, i18n.KeyValidationInvalid, "status")))
			return
		}
		filter.Status = parsed
	}

	if page, paged := utils.PageFromQuery(c); paged {
		licenses, total, err := h.licenseService.ListLicensesPage(c.Request.Context(), filter, page)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		utils.PaginatedResponse(c, utils.NewPage(licenses, total, page))
		return
	}

	licenses, err := h.licenseService.ListLicenses(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, licenses)
}

// GET /api/licenses/expiring
func (h *LicenseHandler) ExpiringLicenses(c *gin.Context) {
	licenses, err := h.licenseService.ExpiringLicenses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponseWithMeta(c, licenses, gin.H{"count": len(licenses)})
}

// GET /api/licenses/:id
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	license, err := h.licenseService.GetLicense(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, license)
}

// POST /api/licenses
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LicenseRequest
	if !bindAndValidate(c, &req) {
		return
	}

	license, err := h.licenseService.CreateLicense(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLicenseCreated),
		"license": license,
	})
}

// PUT /api/licenses/:id
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req services.LicenseRequest
	if !bindAndValidate(c, &req) {
		return
	}

	license, err := h.licenseService.UpdateLicense(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLicenseUpdated),
		"license": license,
	})
}

// PATCH /api/licenses/:id/status
func (h *LicenseHandler) ChangeStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateLicenseStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	license, err := h.licenseService.ChangeStatus(c.Request.Context(), role, id, licensing.LicenseStatus(strings.ToUpper(req.Status)))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLicenseStatusChanged),
		"license": license,
	})
}

// PATCH /api/licenses/:id/signature
func (h *LicenseHandler) SetSignature(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req services.SignatureRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	if err := h.licenseService.SetSignature(c.Request.Context(), role, id, *req.Signature); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyLicenseSigned),
		"signature": *req.Signature,
	})
}

// DELETE /api/licenses/:id
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	if err := h.licenseService.DeleteLicense(c.Request.Context(), role, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLicenseDeleted),
	})
}
