package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("期望带 CORS 头, got=%q", got)
	}
}

func TestNewHttpServer_预检请求直接返回(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", nil, nil)
	s.Group().POST("/boards/me/drop", func(c *gin.Context) {
		t.Fatalf("预检请求不应进入 handler")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/boards/me/drop", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusNoContent)
	}
}
