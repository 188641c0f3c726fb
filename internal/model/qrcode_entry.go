package model

import "time"

// QRCodeEntry maps a short code to a target URL. ExpireAt is nil for
// entries that never expire; ScanCount only grows, via the public
// redirect path.
type QRCodeEntry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	ShortCode string     `gorm:"uniqueIndex;size:64;not null" json:"shortCode"`
	TargetURL string     `gorm:"size:2048;not null" json:"targetUrl"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpireAt  *time.Time `json:"expireAt"`
	Active    bool       `json:"active"`
	ScanCount int64      `gorm:"not null;default:0" json:"scanCount"`
}
