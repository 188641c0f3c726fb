package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"qrlink-go/internal/dto"
)

func newTestRedirectService(t *testing.T) (*RedirectService, *QRCodeService) {
	t.Helper()
	svc := newTestService(t)
	redirects := NewRedirectService(svc.db)
	redirects.now = svc.now
	return redirects, svc
}

func scanCount(t *testing.T, svc *QRCodeService, id uint) int64 {
	t.Helper()
	entry, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	return entry.ScanCount
}

func TestResolveCountsScan(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	created := mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "active1",
		TargetURL: "https://example.com/target",
	})

	target, err := redirects.Resolve(context.Background(), "active1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target != "https://example.com/target" {
		t.Errorf("expected target url, got %q", target)
	}
	if got := scanCount(t, svc, created.ID); got != 1 {
		t.Errorf("expected scan count 1, got %d", got)
	}

	if _, err := redirects.Resolve(context.Background(), "active1"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got := scanCount(t, svc, created.ID); got != 2 {
		t.Errorf("expected scan count 2, got %d", got)
	}
}

func TestResolveUnknownCode(t *testing.T) {
	redirects, _ := newTestRedirectService(t)

	_, err := redirects.Resolve(context.Background(), "missing")
	assertAppErrorCode(t, err, http.StatusNotFound)
}

func TestResolveInactiveLooksLikeUnknown(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	created := mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "paused",
		TargetURL: "https://example.com",
		Active:    boolPtr(false),
	})

	_, inactiveErr := redirects.Resolve(context.Background(), "paused")
	assertAppErrorCode(t, inactiveErr, http.StatusNotFound)

	_, unknownErr := redirects.Resolve(context.Background(), "missing")
	assertAppErrorCode(t, unknownErr, http.StatusNotFound)

	if inactiveErr.Error() != unknownErr.Error() {
		t.Errorf("inactive and unknown outcomes must be indistinguishable: %q vs %q",
			inactiveErr.Error(), unknownErr.Error())
	}
	if got := scanCount(t, svc, created.ID); got != 0 {
		t.Errorf("rejected scan must not count, got %d", got)
	}
}

func TestResolveExpired(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	created := mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "dated",
		TargetURL: "https://example.com",
		OneYear:   true,
	})

	// Move the clock past the one-year window.
	redirects.now = func() time.Time { return testNow.AddDate(1, 5, 0) }

	_, err := redirects.Resolve(context.Background(), "dated")
	assertAppErrorCode(t, err, http.StatusNotFound)

	if got := scanCount(t, svc, created.ID); got != 0 {
		t.Errorf("expired scan must not count, got %d", got)
	}
}

func TestResolveAtExpiryBoundary(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "edge",
		TargetURL: "https://example.com",
		OneYear:   true,
	})

	// Expiry is strictly-before: a scan at the exact expiry instant
	// still redirects.
	redirects.now = func() time.Time { return testNow.AddDate(1, 0, 0) }

	if _, err := redirects.Resolve(context.Background(), "edge"); err != nil {
		t.Fatalf("Resolve at expiry instant failed: %v", err)
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderImage(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	created := mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "img",
		TargetURL: "https://example.com",
	})

	png, err := redirects.RenderImage(context.Background(), "img")
	if err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG image bytes")
	}
	if got := scanCount(t, svc, created.ID); got != 0 {
		t.Errorf("rendering must not count a scan, got %d", got)
	}
}

func TestRenderImageIgnoresRedeemability(t *testing.T) {
	redirects, svc := newTestRedirectService(t)

	mustCreate(t, svc, dto.CreateQRCodeRequest{
		ShortCode: "frozen",
		TargetURL: "https://example.com",
		Active:    boolPtr(false),
	})

	// Unlike Resolve, rendering works for inactive or expired entries.
	png, err := redirects.RenderImage(context.Background(), "frozen")
	if err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG image bytes")
	}
}

func TestRenderImageUnknownCode(t *testing.T) {
	redirects, _ := newTestRedirectService(t)

	_, err := redirects.RenderImage(context.Background(), "missing")
	assertAppErrorCode(t, err, http.StatusNotFound)
}
