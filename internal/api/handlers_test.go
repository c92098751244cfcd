package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xwordgen/engine/internal/auth"
	"github.com/xwordgen/engine/pkg/layout"
)

func setupRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/guest", h.Guest)
	r.POST("/api/puzzles/generate", h.Generate)
	return r
}

func fiveEntriesJSON() json.RawMessage {
	entries := []map[string]string{
		{"word": "CAT", "clue": "Feline"},
		{"word": "TAR", "clue": "Sticky black"},
		{"word": "ART", "clue": "Museum piece"},
		{"word": "RAT", "clue": "Rodent"},
		{"word": "TAB", "clue": "Small flap"},
	}
	data, _ := json.Marshal(entries)
	return data
}

func TestHandlers_Guest(t *testing.T) {
	h := NewHandlers(nil, auth.NewAuthService("test-secret"))
	router := setupRouter(h)

	body, _ := json.Marshal(GuestRequest{DisplayName: "Explorer"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/guest", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a non-empty token")
	}
	if !resp.User.IsGuest {
		t.Error("expected IsGuest to be true")
	}
	if resp.User.DisplayName != "Explorer" {
		t.Errorf("DisplayName = %q, want %q", resp.User.DisplayName, "Explorer")
	}
}

func TestHandlers_Generate_Success(t *testing.T) {
	h := NewHandlers(nil, auth.NewAuthService("test-secret"))
	router := setupRouter(h)

	seed := int64(1)
	reqBody, _ := json.Marshal(GenerateRequest{
		Entries:        fiveEntriesJSON(),
		RequestedCount: 5,
		Seed:           &seed,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/puzzles/generate", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var pj map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &pj); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := pj["grid"]; !ok {
		t.Error("expected a grid field in the response")
	}
}

func TestHandlers_Generate_ErrorMapping(t *testing.T) {
	h := NewHandlers(nil, auth.NewAuthService("test-secret"))
	router := setupRouter(h)

	tests := []struct {
		name       string
		entries    json.RawMessage
		count      int
		wantStatus int
		wantKind   layout.ErrorKind
	}{
		{
			name:       "invalid input shape",
			entries:    json.RawMessage(`{"not":"an array"}`),
			count:      5,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   layout.InvalidInputShape,
		},
		{
			name:       "no valid entries",
			entries:    json.RawMessage(`[{"word":"","clue":""}]`),
			count:      5,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   layout.NoValidEntries,
		},
		{
			name:       "count below minimum",
			entries:    fiveEntriesJSON(),
			count:      1,
			wantStatus: http.StatusBadRequest,
			wantKind:   layout.CountBelowMinimum,
		},
		{
			name:       "count exceeds available",
			entries:    fiveEntriesJSON(),
			count:      20,
			wantStatus: http.StatusBadRequest,
			wantKind:   layout.CountExceedsAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBody, _ := json.Marshal(GenerateRequest{Entries: tt.entries, RequestedCount: tt.count})
			req, _ := http.NewRequest(http.MethodPost, "/api/puzzles/generate", bytes.NewBuffer(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["kind"] != string(tt.wantKind) {
				t.Errorf("kind = %q, want %q", resp["kind"], tt.wantKind)
			}
		})
	}
}

func TestErrorKindStatus(t *testing.T) {
	tests := []struct {
		kind layout.ErrorKind
		want int
	}{
		{layout.InvalidInputShape, http.StatusUnprocessableEntity},
		{layout.NoValidEntries, http.StatusUnprocessableEntity},
		{layout.CountBelowMinimum, http.StatusBadRequest},
		{layout.CountExceedsAvailable, http.StatusBadRequest},
		{layout.NotEnoughEntries, http.StatusBadRequest},
		{layout.Unplaceable, http.StatusConflict},
	}
	for _, tt := range tests {
		if got := errorKindStatus(tt.kind); got != tt.want {
			t.Errorf("errorKindStatus(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
