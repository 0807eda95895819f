package handler

import (
	"net/http"
	"testing"
)

func TestSubscribeChangesRejectsUnknownTable(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestRouter(api, 1)

	w := doJSON(r, http.MethodGet, "/api/changes?table=users", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestSubscribeChangesWithoutHub(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestRouter(api, 1)

	w := doJSON(r, http.MethodGet, "/api/changes?table=chat_messages", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 when no hub is running, got %d", w.Code)
	}
}
