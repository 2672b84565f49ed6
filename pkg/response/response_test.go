package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestSuccessWritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	Success(c, 0, []string{}, "ok", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["request_id"] != "rid-1" || body["message"] != "ok" {
		t.Errorf("unexpected envelope %v", body)
	}
	if _, ok := body["data"].([]any); !ok {
		t.Errorf("empty slice data should be kept, got %v", body["data"])
	}
	if _, ok := body["error"]; ok {
		t.Error("success envelope must not carry error")
	}
}

func TestErrorAbortsAndDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, 0, "bad input", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected context to be aborted")
	}
	body := decode(t, w)
	if body["success"] != false || body["error"] != "bad input" {
		t.Errorf("unexpected envelope %v", body)
	}
}

func TestErrorDetailsMap(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusBadRequest, "validation failed", map[string]string{"email": "is required"})

	details, ok := decode(t, w)["error"].(map[string]any)
	if !ok || details["email"] != "is required" {
		t.Errorf("unexpected error details %v", details)
	}
}
