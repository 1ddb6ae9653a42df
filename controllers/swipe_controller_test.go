package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resonate_server/services"
)

// TestHandleSwipeRejectsUnknownAction ensures a bad action is a client
// error, not a server failure. Validation runs before the service is
// touched.
func TestHandleSwipeRejectsUnknownAction(t *testing.T) {
	controller := NewSwipeController(&services.SwipeService{}, nil)

	req := httptest.NewRequest("POST", "/api/swipe", strings.NewReader(`{"userId":"alice","action":"wink"}`))
	rec := httptest.NewRecorder()
	controller.HandleSwipe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestHandleSwipeRejectsMalformedPayload ensures unparseable JSON is a 400.
func TestHandleSwipeRejectsMalformedPayload(t *testing.T) {
	controller := NewSwipeController(&services.SwipeService{}, nil)

	req := httptest.NewRequest("POST", "/api/swipe", strings.NewReader(`{"userId":`))
	rec := httptest.NewRecorder()
	controller.HandleSwipe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
