package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/retypegame/retype-api/internal/models"
)

func TestIngestEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		full           bool
		expectedStatus int
	}{
		{
			name:           "Accepted",
			body:           `{"type":"word_completed","session_id":"s-1","user_id":"user-1"}`,
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "Missing Type",
			body:           `{"session_id":"s-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Queue Full",
			body:           `{"type":"word_completed","session_id":"s-1"}`,
			full:           true,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			queue := &MockQueue{Full: tt.full}
			h.pool = queue

			req := httptest.NewRequest("POST", "/api/events", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.IngestEvent(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusAccepted {
				if len(queue.Enqueued) != 1 {
					t.Fatalf("enqueued = %d, want 1", len(queue.Enqueued))
				}
				if queue.Enqueued[0].Timestamp.IsZero() {
					t.Error("expected a receipt timestamp on the event")
				}
			}
		})
	}
}

func TestRecentActivity(t *testing.T) {
	h := newTestHandler()
	var gotLimit int64
	h.activity = &MockActivityService{
		RecentFunc: func(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
			gotLimit = limit
			return []models.ActivityEntry{{UserID: "user-1", Username: "alice", WPM: 64}}, nil
		},
	}

	req := httptest.NewRequest("GET", "/api/activity?limit=10", nil)
	w := httptest.NewRecorder()
	h.RecentActivity(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotLimit != 10 {
		t.Errorf("limit = %d, want 10", gotLimit)
	}

	var resp struct {
		Activity []models.ActivityEntry `json:"activity"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Activity) != 1 || resp.Activity[0].Username != "alice" {
		t.Errorf("activity = %+v, want one entry for alice", resp.Activity)
	}
}
