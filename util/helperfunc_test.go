package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestContains(t *testing.T) {
	list := []string{"a", "b", "c"}
	if !Contains("b", list) {
		t.Fatalf("expected Contains to return true for existing item")
	}
	if Contains("x", list) {
		t.Fatalf("expected Contains to return false for missing item")
	}
	if Contains("a", nil) {
		t.Fatalf("expected Contains to return false for nil list")
	}
}

func callAndDecode(t *testing.T, fn func(c *gin.Context)) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	fn(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return w.Code, body
}

func TestCallOK_MergesPayload(t *testing.T) {
	code, body := callAndDecode(t, func(c *gin.Context) {
		CallOK(c, gin.H{"total": 3, "tenantId": "t-1"})
	})
	if code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if body["ok"] != true {
		t.Errorf("ok = %v, want true", body["ok"])
	}
	if body["total"] != float64(3) || body["tenantId"] != "t-1" {
		t.Errorf("payload not merged: %v", body)
	}
}

func TestCallUserError(t *testing.T) {
	code, body := callAndDecode(t, func(c *gin.Context) {
		CallUserError(c, "Invalid category")
	})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if body["ok"] != false || body["error"] != "Invalid category" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestCallUpstreamError(t *testing.T) {
	code, body := callAndDecode(t, func(c *gin.Context) {
		CallUpstreamError(c, "FusionAuth returned 500")
	})
	if code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", code)
	}
	if body["ok"] != false {
		t.Errorf("ok = %v, want false", body["ok"])
	}
}

func TestCallServerError(t *testing.T) {
	code, body := callAndDecode(t, func(c *gin.Context) {
		CallServerError(c, "boom")
	})
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
	if body["error"] != "boom" {
		t.Errorf("unexpected body: %v", body)
	}
}
