package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminTestRouter(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminKeyMiddleware(apiKey), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAdminKeyMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
	}{
		{name: "matching key", configured: "secret", sent: "secret", wantStatus: http.StatusOK},
		{name: "missing header", configured: "secret", sent: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", configured: "secret", sent: "guess", wantStatus: http.StatusUnauthorized},
		{name: "unconfigured key locks everything", configured: "", sent: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := adminTestRouter(tc.configured)

			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tc.sent != "" {
				req.Header.Set("X-API-KEY", tc.sent)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusUnauthorized && w.Body.String() != "Unauthorized" {
				t.Errorf("expected body %q, got %q", "Unauthorized", w.Body.String())
			}
		})
	}
}
