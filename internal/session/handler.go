package session

import (
	"net/http"

	"signature-builder/internal/editor"
	"signature-builder/internal/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

type OpenRequest struct {
	ClientID string `json:"client_id" binding:"required,max=128,printascii"`
}

type TemplateRequest struct {
	Name string `json:"name" binding:"required"`
}

// Open starts a session. Signed-in users get remote autosave.
func (h *Handler) Open(c *gin.Context) {
	var form OpenRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	s := h.manager.Open(c.Request.Context(), form.ClientID, c.GetUint64("user_id"))
	c.JSON(http.StatusCreated, s.View())
}

func (h *Handler) Show(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

func (h *Handler) Command(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var cmd editor.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	c.JSON(http.StatusOK, s.Dispatch(cmd))
}

// LoadTemplate replaces the document rows with a built-in template.
func (h *Handler) LoadTemplate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var form TemplateRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	rows, found := editor.Template(form.Name)
	if !found {
		c.Error(errors.NotFound("Template not found", nil))
		return
	}

	c.JSON(http.StatusOK, s.Dispatch(editor.LoadTemplate(rows)))
}

func (h *Handler) Selection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	node, found := s.Selected()
	if !found {
		c.JSON(http.StatusOK, gin.H{"node": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"node": node})
}

func (h *Handler) Close(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	h.manager.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": editor.Templates()})
}

// session looks up the :id session. A session opened by a signed-in user
// is invisible to everyone else.
func (h *Handler) session(c *gin.Context) (*Session, bool) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok || (s.UserID != 0 && s.UserID != c.GetUint64("user_id")) {
		c.Error(errors.NotFound("Session not found", nil))
		return nil, false
	}
	return s, true
}
