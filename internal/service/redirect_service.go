package service

import (
	"context"
	"errors"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qrlink-go/internal/apperrors"
	"qrlink-go/internal/model"
)

// qrModuleScale is the pixel width of one QR module in rendered images.
const qrModuleScale = 10

// RedirectService resolves public short-code visits. Expiry is
// evaluated lazily here; nothing sweeps expired entries in the
// background.
type RedirectService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRedirectService(db *gorm.DB) *RedirectService {
	return &RedirectService{
		db:  db,
		now: time.Now,
	}
}

// isRedeemable is the single place deciding whether an entry may
// redirect: it must be active and, when an expiry is set, not yet past
// it.
func isRedeemable(entry *model.QRCodeEntry, now time.Time) bool {
	if !entry.Active {
		return false
	}
	return entry.ExpireAt == nil || !entry.ExpireAt.Before(now)
}

// Resolve looks up the code and returns the redirect target after
// durably recording the visit. Absent, inactive and expired codes all
// fail with the same not-found outcome so the public endpoint leaks
// nothing about an entry's existence or state. The scan counter is
// bumped with a single SQL expression, so concurrent visits never lose
// counts; if the increment cannot be persisted the resolution fails.
func (s *RedirectService) Resolve(ctx context.Context, shortCode string) (string, error) {
	var entry model.QRCodeEntry
	if err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFoundError("QR code not found")
		}
		zap.L().Error("Failed to query QR code entry",
			zap.String("short_code", shortCode),
			zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	if !isRedeemable(&entry, s.now().UTC()) {
		zap.L().Info("Rejected scan of inactive or expired QR code",
			zap.Uint("id", entry.ID),
			zap.Bool("active", entry.Active))
		return "", apperrors.NotFoundError("QR code not found")
	}

	res := s.db.WithContext(ctx).
		Model(&model.QRCodeEntry{}).
		Where("id = ?", entry.ID).
		UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1))
	if res.Error != nil {
		zap.L().Error("Failed to record scan",
			zap.Uint("id", entry.ID),
			zap.Error(res.Error))
		return "", apperrors.SystemErrorDefault()
	}
	if res.RowsAffected == 0 {
		// Deleted between lookup and increment.
		return "", apperrors.NotFoundError("QR code not found")
	}

	return entry.TargetURL, nil
}

// RenderImage encodes the entry's current target URL as a PNG QR code.
// Inactive and expired entries still render; only a truly absent code
// fails. No visit is counted on this path.
func (s *RedirectService) RenderImage(ctx context.Context, shortCode string) ([]byte, error) {
	var entry model.QRCodeEntry
	if err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("QR code not found")
		}
		zap.L().Error("Failed to query QR code entry",
			zap.String("short_code", shortCode),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	qr, err := qrcode.New(entry.TargetURL, qrcode.High)
	if err != nil {
		zap.L().Error("Failed to encode QR image",
			zap.Uint("id", entry.ID),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	// Negative size renders at a fixed scale of pixels per module.
	png, err := qr.PNG(-qrModuleScale)
	if err != nil {
		zap.L().Error("Failed to render QR image",
			zap.Uint("id", entry.ID),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return png, nil
}
