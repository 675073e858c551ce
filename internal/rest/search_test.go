package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"shopLens/business/search"
	"shopLens/domain"
)

type stubSearchService struct {
	gotReq search.Request
	result *domain.SearchResult
	err    error
}

func (s *stubSearchService) Search(ctx context.Context, req search.Request) (*domain.SearchResult, error) {
	s.gotReq = req

	if s.err != nil {
		return nil, s.err
	}

	return s.result, nil
}

func doSearch(t *testing.T, svc SearchService, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewSearchHandler(svc)
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	return rec
}

func TestSearchDefaultsApplied(t *testing.T) {
	svc := &stubSearchService{result: &domain.SearchResult{}}

	rec := doSearch(t, svc, `{"query": "red dress"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if !svc.gotReq.EnableSentiment || !svc.gotReq.EnableOccasion || !svc.gotReq.UseCache {
		t.Errorf("sentiment, occasion and cache should default to on: %+v", svc.gotReq)
	}

	if svc.gotReq.EnableRerank {
		t.Error("rerank should default to off")
	}
}

func TestSearchExplicitFlagsForwarded(t *testing.T) {
	svc := &stubSearchService{result: &domain.SearchResult{}}

	doSearch(t, svc, `{"query": "sofa", "enable_sentiment": false, "enable_rerank": true, "use_cache": false, "occasion": "wedding"}`)

	if svc.gotReq.EnableSentiment {
		t.Error("enable_sentiment=false was not forwarded")
	}

	if !svc.gotReq.EnableRerank {
		t.Error("enable_rerank=true was not forwarded")
	}

	if svc.gotReq.UseCache {
		t.Error("use_cache=false was not forwarded")
	}

	if svc.gotReq.Context.Occasion != "wedding" {
		t.Errorf("expected occasion wedding, got %q", svc.gotReq.Context.Occasion)
	}
}

func TestSearchEmptyQueryMapsTo400(t *testing.T) {
	svc := &stubSearchService{err: search.ErrEmptyQuery}

	rec := doSearch(t, svc, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchEncoderDownMapsTo503(t *testing.T) {
	svc := &stubSearchService{err: search.ErrEncoderUnavailable}

	rec := doSearch(t, svc, `{"query": "lamp"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSearchInvalidTopKRejected(t *testing.T) {
	svc := &stubSearchService{result: &domain.SearchResult{}}

	rec := doSearch(t, svc, `{"query": "lamp", "top_k": 500}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for top_k out of range, got %d", rec.Code)
	}
}
