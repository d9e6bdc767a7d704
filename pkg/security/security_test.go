package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOriginSetUpdate(t *testing.T) {
	set := NewOriginSet([]string{"http://localhost:5173"})

	if !set.Contains("http://localhost:5173") {
		t.Error("initial origin not whitelisted")
	}
	if set.Contains("http://evil.example") {
		t.Error("unknown origin must not be whitelisted")
	}

	set.Update([]string{"https://portal.example.com"})
	if set.Contains("http://localhost:5173") {
		t.Error("old origin survived the update")
	}
	if !set.Contains("https://portal.example.com") {
		t.Error("new origin not whitelisted after update")
	}
}

func TestCORSHeaders(t *testing.T) {
	origins := NewOriginSet([]string{"http://localhost:5173"})
	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("whitelisted origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Allow-Credentials = %q, want true", got)
		}
	})

	t.Run("unknown origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", w.Code)
		}
	})
}
