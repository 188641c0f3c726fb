package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"qrlink-go/internal/apperrors"
	"qrlink-go/internal/dto"
	"qrlink-go/internal/model"
	"qrlink-go/internal/shortcode"
	"qrlink-go/pkg/utils"
	"qrlink-go/response"
)

const untitledName = "Untitled"

// QRCodeService owns every state transition of an entry outside of
// visit counting: create, update, rotate, delete, plus lookups for the
// admin surface.
type QRCodeService struct {
	db  *gorm.DB
	gen *shortcode.Generator
	now func() time.Time
}

func NewQRCodeService(db *gorm.DB, gen *shortcode.Generator) *QRCodeService {
	return &QRCodeService{
		db:  db,
		gen: gen,
		now: time.Now,
	}
}

// Create validates the target URL, resolves the short code (supplied
// verbatim after trimming, or generated), and persists the new entry.
// A supplied code that is already taken fails with a conflict; a
// generated code retries on the astronomically rare collision.
func (s *QRCodeService) Create(ctx context.Context, req dto.CreateQRCodeRequest) (*model.QRCodeEntry, error) {
	targetURL := strings.TrimSpace(req.TargetURL)
	if err := utils.ValidateTargetURL(targetURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = untitledName
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.now().UTC()
	entry := &model.QRCodeEntry{
		Name:      name,
		TargetURL: targetURL,
		CreatedAt: now,
		Active:    active,
	}
	if req.OneYear {
		expireAt := now.AddDate(1, 0, 0)
		entry.ExpireAt = &expireAt
	}

	if code := strings.TrimSpace(req.ShortCode); code != "" {
		if err := utils.ValidateShortCode(code); err != nil {
			return nil, apperrors.InvalidRequestError(err.Error())
		}
		entry.ShortCode = code

		// Single attempt for caller-supplied codes; a collision is the
		// caller's to resolve.
		if err := s.insert(ctx, entry); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ConflictError("shortCode is already in use")
			}
			zap.L().Error("Failed to create QR code entry",
				zap.String("short_code", code),
				zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		return entry, nil
	}

	for {
		code, err := s.gen.Generate()
		if err != nil {
			zap.L().Error("Short code generation failed", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		entry.ShortCode = code

		err = s.insert(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		zap.L().Error("Failed to create QR code entry",
			zap.String("short_code", code),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
}

// insert persists a new entry. The existence pre-check gives a
// deterministic duplicate signal; the unique index on short_code closes
// the remaining race window at the store level.
func (s *QRCodeService) insert(ctx context.Context, entry *model.QRCodeEntry) error {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&model.QRCodeEntry{}).
		Where("short_code = ?", entry.ShortCode).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// Get fetches an entry by id.
func (s *QRCodeService) Get(ctx context.Context, id uint) (*model.QRCodeEntry, error) {
	var entry model.QRCodeEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("QR code not found")
		}
		zap.L().Error("Failed to query QR code entry",
			zap.Uint("id", id),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &entry, nil
}

// List returns entries newest-id-first. Out-of-range paging inputs are
// normalized (page 1, page size 20, hard cap 100) rather than rejected.
func (s *QRCodeService) List(ctx context.Context, page, pageSize int) (*response.PageResponse[model.QRCodeEntry], error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := s.db.WithContext(ctx).Model(&model.QRCodeEntry{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		zap.L().Error("Failed to count QR code entries", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	items := []model.QRCodeEntry{}
	if total > 0 {
		if err := db.
			Limit(pageSize).
			Offset((page - 1) * pageSize).
			Order("id DESC").
			Find(&items).Error; err != nil {
			zap.L().Error("Failed to list QR code entries", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
	}

	return &response.PageResponse[model.QRCodeEntry]{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

// Update applies the requested field changes. Expiry resolution, in
// precedence order: oneYear=true re-arms the window from createdAt
// (recomputed when resetOneYear, otherwise only when unset);
// oneYear=false clears it; resetOneYear alone recomputes it; absent
// leaves it untouched. The window is always anchored to createdAt,
// never to the update-time clock.
func (s *QRCodeService) Update(ctx context.Context, id uint, req dto.UpdateQRCodeRequest) (*model.QRCodeEntry, error) {
	var entry model.QRCodeEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("QR code not found")
		}
		zap.L().Error("Failed to query QR code entry",
			zap.Uint("id", id),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	if req.Name != nil {
		// Unlike Create, a blank name leaves the stored one alone.
		if name := strings.TrimSpace(*req.Name); name != "" {
			entry.Name = name
		}
	}

	if req.TargetURL != nil {
		if err := utils.ValidateTargetURL(*req.TargetURL); err != nil {
			return nil, apperrors.InvalidRequestError(err.Error())
		}
		entry.TargetURL = *req.TargetURL
	}

	if req.Active != nil {
		entry.Active = *req.Active
	}

	switch {
	case req.OneYear != nil && *req.OneYear:
		if (req.ResetOneYear != nil && *req.ResetOneYear) || entry.ExpireAt == nil {
			expireAt := entry.CreatedAt.AddDate(1, 0, 0)
			entry.ExpireAt = &expireAt
		}
	case req.OneYear != nil:
		entry.ExpireAt = nil
	case req.ResetOneYear != nil && *req.ResetOneYear:
		expireAt := entry.CreatedAt.AddDate(1, 0, 0)
		entry.ExpireAt = &expireAt
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		zap.L().Error("Failed to update QR code entry",
			zap.Uint("id", id),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &entry, nil
}

// Rotate assigns a freshly generated code to the entry. Generation
// retries until the candidate is unused; the old code stops resolving
// the moment the update commits. All other fields, including the scan
// counter, are untouched.
func (s *QRCodeService) Rotate(ctx context.Context, id uint) (*dto.RotateCodeResponse, error) {
	var entry model.QRCodeEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("QR code not found")
		}
		zap.L().Error("Failed to query QR code entry",
			zap.Uint("id", id),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	for {
		code, err := s.gen.Generate()
		if err != nil {
			zap.L().Error("Short code generation failed", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}

		var count int64
		if err := s.db.WithContext(ctx).
			Model(&model.QRCodeEntry{}).
			Where("short_code = ?", code).
			Count(&count).Error; err != nil {
			zap.L().Error("Failed to check short code availability",
				zap.String("short_code", code),
				zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		if count > 0 {
			continue
		}

		res := s.db.WithContext(ctx).
			Model(&model.QRCodeEntry{}).
			Where("id = ?", entry.ID).
			Update("short_code", code)
		if res.Error != nil {
			// Lost a race on the unique index; generate another candidate.
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue
			}
			zap.L().Error("Failed to rotate short code",
				zap.Uint("id", entry.ID),
				zap.Error(res.Error))
			return nil, apperrors.SystemErrorDefault()
		}
		if res.RowsAffected == 0 {
			return nil, apperrors.NotFoundError("QR code not found")
		}

		return &dto.RotateCodeResponse{
			ID:        entry.ID,
			ShortCode: code,
		}, nil
	}
}

// Delete permanently removes the entry. There is no soft delete.
func (s *QRCodeService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.QRCodeEntry{}, id)
	if res.Error != nil {
		zap.L().Error("Failed to delete QR code entry",
			zap.Uint("id", id),
			zap.Error(res.Error))
		return apperrors.SystemErrorDefault()
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundError("QR code not found")
	}
	return nil
}
