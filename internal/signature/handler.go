package signature

import (
	"net/http"
	"strconv"

	"signature-builder/internal/errors"
	"signature-builder/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")

	page, pageSize := utils.GetPaginationParams(c)
	result, err := h.service.ListSignatures(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Show(c *gin.Context) {
	id, ok := signatureID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetSignature(c.Request.Context(), id, c.GetUint64("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := signatureID(c)
	if !ok {
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	doc, err := h.service.UpdateSignature(c.Request.Context(), id, c.GetUint64("user_id"), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := signatureID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSignature(c.Request.Context(), id, c.GetUint64("user_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func signatureID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.NotFound("Signature not found", err))
		return 0, false
	}
	return id, true
}
