package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusBadRequest, "boom")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "boom" {
		t.Errorf("body = %v", body)
	}
}

func TestJSONWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := JSONWrite(rr, http.StatusCreated, map[string]int{"n": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestNewTokenUnique(t *testing.T) {
	a, b := NewToken(), NewToken()
	if a == b {
		t.Error("tokens collide")
	}
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32 hex chars", len(a))
	}
}
