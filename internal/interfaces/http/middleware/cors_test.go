package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsEngine(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(cfg))
	r.POST("/docs/nda_generator", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSEchoesOriginWithCredentials(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{name: "simple request", method: http.MethodPost, want: http.StatusOK},
		{
			name:    "preflight",
			method:  http.MethodOptions,
			headers: map[string]string{"Access-Control-Request-Method": http.MethodPost},
			want:    http.StatusNoContent,
		},
	}

	const origin = "https://app.example.org"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/docs/nda_generator", nil)
			req.Header.Set("Origin", origin)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			corsEngine(CORSConfig{}).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, origin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
				t.Errorf("Access-Control-Allow-Credentials = %q", got)
			}
		})
	}
}

func TestCORSExplicitOrigins(t *testing.T) {
	r := corsEngine(CORSConfig{AllowedOrigins: []string{"https://allowed.example.org"}})

	req := httptest.NewRequest(http.MethodPost, "/docs/nda_generator", nil)
	req.Header.Set("Origin", "https://other.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want none", got)
	}
}
