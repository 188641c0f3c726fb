package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"qrlink-go/internal/apperrors"
	"qrlink-go/internal/dto"
	"qrlink-go/internal/service"
)

// QRCodeHandler serves the /admin/qrcodes surface.
type QRCodeHandler struct {
	svc *service.QRCodeService
}

func NewQRCodeHandler(svc *service.QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{svc: svc}
}

// bindingError maps a binding failure to the field's msg tag when one
// is declared, falling back to the generic validation error.
func bindingError(req interface{}, err error) *apperrors.AppError {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field, ok := reflect.TypeOf(req).FieldByName(e.Field())
			if !ok {
				break
			}
			if msg := field.Tag.Get("msg"); msg != "" {
				return apperrors.InvalidRequestError(msg)
			}
		}
	}
	return apperrors.InvalidRequestErrorDefault()
}

// entryID parses the :id path parameter. A non-numeric id behaves like
// an unknown one.
func entryID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NotFoundError("QR code not found")
	}
	return uint(id), nil
}

// Create handles POST /admin/qrcodes.
func (h *QRCodeHandler) Create(c *gin.Context) {
	var req dto.CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(req, err))
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		zap.L().Warn("QR code creation failed",
			zap.Error(err),
			zap.String("short_code", req.ShortCode),
		)
		_ = c.Error(err)
		return
	}

	c.Header("Location", fmt.Sprintf("/admin/qrcodes/%d", entry.ID))
	c.JSON(http.StatusCreated, entry)
}

// List handles GET /admin/qrcodes?page&pageSize. Unparseable paging
// values fall through to the service's normalization.
func (h *QRCodeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	pageResp, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, pageResp)
}

// Get handles GET /admin/qrcodes/:id.
func (h *QRCodeHandler) Get(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update handles PUT /admin/qrcodes/:id.
func (h *QRCodeHandler) Update(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpdateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(req, err))
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		zap.L().Warn("QR code update failed",
			zap.Error(err),
			zap.Uint("id", id),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Rotate handles POST /admin/qrcodes/:id/rotate-code.
func (h *QRCodeHandler) Rotate(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	rotated, err := h.svc.Rotate(c.Request.Context(), id)
	if err != nil {
		zap.L().Warn("QR code rotation failed",
			zap.Error(err),
			zap.Uint("id", id),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, rotated)
}

// Delete handles DELETE /admin/qrcodes/:id.
func (h *QRCodeHandler) Delete(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
