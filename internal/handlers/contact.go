// internal/handlers/contact.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// POST /contact
func (h *ContactHandler) SubmitInquiry(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var form services.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&form)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inquiry, err := h.contactService.Create(&form)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{"id": inquiry.ID}, gin.H{
		"message": i18n.T(lang, i18n.KeyContactReceived),
	})
}
