// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/config"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/recommend"
)

type stubService struct {
	rec         *recommend.UserRecommendations
	entries     []recommend.Entry
	cached      bool
	err         error
	invalidated []int64
	lastRefresh bool
}

func (s *stubService) GetRecommendations(_ context.Context, userID int64, limit int, forceRefresh bool) (*recommend.UserRecommendations, bool, error) {
	s.lastRefresh = forceRefresh
	if s.err != nil {
		return nil, false, s.err
	}
	return s.rec, s.cached && !forceRefresh, nil
}

func (s *stubService) SimilarByID(_ context.Context, movieID int64, limit int) ([]recommend.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubService) SimilarByTitle(_ context.Context, title string, limit int) ([]recommend.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubService) InvalidateUser(userID int64) {
	s.invalidated = append(s.invalidated, userID)
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

type stubReady struct{ ready bool }

func (r *stubReady) Ready() bool { return r.ready }

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		Timeout:         5 * time.Second,
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
	}
}

func newTestRouter(svc *stubService, db *stubPinger, ready *stubReady) http.Handler {
	return NewRouter(testServerConfig(), NewHandler(svc, db, ready))
}

func doRequest(t *testing.T, router http.Handler, method, path string) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, &resp
}

func TestGetRecommendations(t *testing.T) {
	svc := &stubService{
		rec: &recommend.UserRecommendations{
			UserID:      7,
			Entries:     []recommend.Entry{{MovieID: 4, Title: "Four", Score: 0.35}},
			GeneratedAt: time.Now().UTC(),
		},
		cached: true,
	}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: true})

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/user/7?limit=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("response status = %q, want success", resp.Status)
	}
	if !resp.Metadata.Cached {
		t.Error("metadata.cached = false, want true")
	}
}

func TestGetRecommendationsInvalidUserID(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubPinger{}, &stubReady{ready: true})

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/recommendations/user/abc")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != errCodeValidation {
		t.Errorf("error = %+v, want %s", resp.Error, errCodeValidation)
	}
}

func TestRefreshForcesRegeneration(t *testing.T) {
	svc := &stubService{
		rec:    &recommend.UserRecommendations{UserID: 7},
		cached: true,
	}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: true})

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/recommendations/user/7/refresh")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.lastRefresh {
		t.Error("refresh endpoint did not force regeneration")
	}
	if resp.Metadata.Cached {
		t.Error("refresh response reported cached")
	}
}

func TestInvalidateCache(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: true})

	rec, _ := doRequest(t, router, http.MethodDelete, "/api/v1/recommendations/user/42/cache")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(svc.invalidated) != 1 || svc.invalidated[0] != 42 {
		t.Errorf("invalidated = %v, want [42]", svc.invalidated)
	}
}

func TestSimilarMoviesNotFound(t *testing.T) {
	svc := &stubService{err: &recommend.NotFoundError{Kind: "movie", Key: "99"}}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: true})

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/movies/99/similar")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != errCodeNotFound {
		t.Errorf("error = %+v, want %s", resp.Error, errCodeNotFound)
	}
}

func TestSimilarMoviesIndexUnavailable(t *testing.T) {
	svc := &stubService{err: recommend.ErrIndexNotLoaded}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: false})

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/movies/1/similar")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != errCodeIndexUnavailable {
		t.Errorf("error = %+v, want %s", resp.Error, errCodeIndexUnavailable)
	}
}

func TestSimilarByTitleRequiresTitle(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubPinger{}, &stubReady{ready: true})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/movies/similar")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSimilarByTitle(t *testing.T) {
	svc := &stubService{entries: []recommend.Entry{{MovieID: 2, Title: "Two", Score: 0.9}}}
	router := newTestRouter(svc, &stubPinger{}, &stubReady{ready: true})

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/movies/similar?title=One")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubPinger{}, &stubReady{})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		indexReady bool
		wantStatus int
	}{
		{"all healthy", nil, true, http.StatusOK},
		{"index missing", nil, false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubService{}, &stubPinger{err: tt.pingErr}, &stubReady{ready: tt.indexReady})

			rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/ready")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubPinger{}, &stubReady{ready: true})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/live")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}
