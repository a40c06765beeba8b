// internal/handlers/sample.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type SampleHandler struct {
	sampleService *services.SampleService
}

func NewSampleHandler(sampleService *services.SampleService) *SampleHandler {
	return &SampleHandler{
		sampleService: sampleService,
	}
}

// GET /api/samples[?page=&limit=&sort=&order=]
func (h *SampleHandler) ListSamples(c *gin.Context) {
	if page, paged := utils.PageFromQuery(c); paged {
		samples, total, err := h.sampleService.ListSamplesPage(c.Request.Context(), page)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		utils.PaginatedResponse(c, utils.NewPage(samples, total, page))
		return
	}

	samples, err := h.sampleService.ListSamples(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, samples)
}

// GET /api/samples/:id
func (h *SampleHandler) GetSample(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	sample, err := h.sampleService.GetSample(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, sample)
}

// GET /api/samples/by-ref?ref_id=
func (h *SampleHandler) GetSampleByRef(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	refID := strings.TrimSpace(c.Query("ref_id"))
	if refID == "" {
		utils.ValidationErrorResponse(c, utils.FieldValidationError("ref_id", "required", i18n.T(lang, i18n.KeyLicenseRefRequired)))
		return
	}

	sample, err := h.sampleService.GetSampleByRef(c.Request.Context(), refID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, sample)
}

// GET /api/ref-id
func (h *SampleHandler) NextRefID(c *gin.Context) {
	next, err := h.sampleService.PeekRefID(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, next)
}

// POST /api/samples
func (h *SampleHandler) CreateSample(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SampleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	sample, err := h.sampleService.CreateSample(c.Request.Context(), role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySampleCreated),
		"sample":  sample,
	})
}

// PUT /api/samples/:id
func (h *SampleHandler) UpdateSample(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req services.SampleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	sample, err := h.sampleService.UpdateSample(c.Request.Context(), role, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySampleUpdated),
		"sample":  sample,
	})
}

// PATCH /api/samples/:id/signature
func (h *SampleHandler) SetSignature(c *gin.Context) {
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

	if err := h.sampleService.SetSignature(c.Request.Context(), role, id, *req.Signature); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeySampleSigned),
		"signature": *req.Signature,
	})
}

// DELETE /api/samples/:id
func (h *SampleHandler) DeleteSample(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	if err := h.sampleService.DeleteSample(c.Request.Context(), role, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySampleDeleted),
	})
}
