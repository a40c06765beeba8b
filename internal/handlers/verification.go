// internal/handlers/verification.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type VerificationHandler struct {
	licenseService *services.LicenseService
}

func NewVerificationHandler(licenseService *services.LicenseService) *VerificationHandler {
	return &VerificationHandler{
		licenseService: licenseService,
	}
}

// GET /api/verify-license?ref_id=
func (h *VerificationHandler) VerifyLicense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	refID := strings.TrimSpace(c.Query("ref_id"))
	if refID == "" {
		utils.ValidationErrorResponse(c, utils.FieldValidationError("ref_id", "required", i18n.T(lang, i18n.KeyLicenseRefRequired)))
		return
	}

	license, err := h.licenseService.VerifyLicense(c.Request.Context(), refID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Signed-in staff lookups are attributed; public ones stay anonymous.
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"license_ref_id": license.LicenseRefID,
		}).Info("Staff license verification")
	}

	utils.SuccessResponse(c, gin.H{
		"verified": true,
		"license":  license,
	})
}
