package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qrlink-go/internal/apperrors"
	"qrlink-go/internal/i18n"
	"qrlink-go/internal/service"
)

// RedirectHandler serves the public /q surface.
type RedirectHandler struct {
	svc *service.RedirectService
}

func NewRedirectHandler(svc *service.RedirectService) *RedirectHandler {
	return &RedirectHandler{svc: svc}
}

// publicError renders a plain-text failure. Absent, inactive and
// expired codes all arrive here as the same not-found error.
func publicError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
		c.String(http.StatusNotFound, i18n.T(c.Request.Context(), "error.qr_not_found", nil))
		return
	}
	c.String(http.StatusInternalServerError, i18n.T(c.Request.Context(), "error.system", nil))
}

// Redirect handles GET /q/:shortCode.
func (h *RedirectHandler) Redirect(c *gin.Context) {
	targetURL, err := h.svc.Resolve(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		publicError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, targetURL)
}

// RenderPNG handles GET /q/:shortCode/png.
func (h *RedirectHandler) RenderPNG(c *gin.Context) {
	png, err := h.svc.RenderImage(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		publicError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
