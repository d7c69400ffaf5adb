package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

func TestOverview(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		overviewErr    error
		expectedStatus int
	}{
		{
			name:           "Success",
			query:          "?userId=user-1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing UserId",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown User",
			query:          "?userId=user-9",
			overviewErr:    logic.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			h.users = &MockUsersService{
				OverviewFunc: func(ctx context.Context, userID string) (*models.UserOverview, error) {
					if tt.overviewErr != nil {
						return nil, tt.overviewErr
					}
					return &models.UserOverview{
						ID:       userID,
						Username: "alice",
						Stats:    []models.TypingStat{{ID: "stat-1", WPM: 60}},
					}, nil
				},
			}

			req := httptest.NewRequest("GET", "/api/users/overview"+tt.query, nil)
			w := httptest.NewRecorder()
			h.Overview(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					User models.UserOverview `json:"user"`
				}
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.User.Username != "alice" {
					t.Errorf("username = %v, want alice", resp.User.Username)
				}
				if len(resp.User.Stats) != 1 {
					t.Errorf("stats = %d, want 1", len(resp.User.Stats))
				}
			}
		})
	}
}

func TestUserHistory(t *testing.T) {
	h := newTestHandler()
	h.users = &MockUsersService{
		HistoryFunc: func(ctx context.Context, userID string) ([]models.TypingStat, error) {
			if userID != "user-1" {
				return []models.TypingStat{}, nil
			}
			return []models.TypingStat{
				{ID: "stat-2", UserID: userID, WPM: 70},
				{ID: "stat-1", UserID: userID, WPM: 55},
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/stats/user/{userId}", h.UserHistory)

	t.Run("Known User", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/stats/user/user-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
		}
		var resp struct {
			Stats []models.TypingStat `json:"stats"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Stats) != 2 || resp.Stats[0].WPM != 70 {
			t.Errorf("stats = %+v, want newest first", resp.Stats)
		}
	})

	t.Run("Unknown User Gets Empty List", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/stats/user/ghost", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
		}
		var resp struct {
			Stats []models.TypingStat `json:"stats"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Stats) != 0 {
			t.Errorf("stats = %d, want 0", len(resp.Stats))
		}
	})
}
