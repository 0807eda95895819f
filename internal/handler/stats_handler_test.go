package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aidiary/internal/stats"
)

func TestGetCalendarStatsForMonth(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestRouter(api, 1)

	for _, seed := range []map[string]any{
		{"date": "2024-03-05", "title": "晨会"},
		{"date": "2024-03-05", "title": "复盘"},
		{"date": "2024-04-01", "title": "下月"},
	} {
		if w := doJSON(r, http.MethodPost, "/api/calendar", seed); w.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/api/stats/calendar?month=2024-03", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Month   string                   `json:"month"`
		Buckets []stats.CompletionBucket `json:"buckets"`
		CanPrev bool                     `json:"canPrev"`
		CanNext bool                     `json:"canNext"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Month != "2024-03" {
		t.Fatalf("unexpected month %q", resp.Month)
	}
	if len(resp.Buckets) != 1 {
		t.Fatalf("expected one bucket for 2024-03, got %+v", resp.Buckets)
	}
	if resp.Buckets[0].Day != "03/05" || resp.Buckets[0].Incomplete != 2 {
		t.Fatalf("unexpected bucket: %+v", resp.Buckets[0])
	}
	if !resp.CanPrev || !resp.CanNext {
		t.Fatal("past months should allow navigation both ways")
	}
}

func TestGetCalendarStatsRejectsBadMonth(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestRouter(api, 1)

	w := doJSON(r, http.MethodGet, "/api/stats/calendar?month=2024/03", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetEmotionStatsForMonth(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()
	r := newTestRouter(api, 1)

	for _, rating := range []int{1, 1, 3} {
		w := doJSON(r, http.MethodPost, "/api/diary", map[string]any{"content": "今天的记录", "rating": rating})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/api/stats/emotions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Buckets []stats.EmotionBucket `json:"buckets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	counts := make(map[string]int, len(resp.Buckets))
	for _, b := range resp.Buckets {
		counts[b.Emotion] = b.Count
	}
	if counts["喜悦"] != 2 || counts["愤怒"] != 1 {
		t.Fatalf("unexpected distribution: %+v", resp.Buckets)
	}
}
