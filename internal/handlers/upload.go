// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /api/uploads (multipart: file, category)
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	category := c.PostForm("category")
	if category == "" {
		utils.ValidationErrorResponse(c, utils.FieldValidationError("category", "required", i18n.T(lang, i18n.KeyValidationRequired, "category")))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.ValidationErrorResponse(c, utils.FieldValidationError("file", "required", i18n.T(lang, i18n.KeyFileRequired)))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadDocument(c.Request.Context(), category, header.Filename, header.Size, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    result,
	})
}
