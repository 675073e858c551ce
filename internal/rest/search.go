package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopLens/business/search"
	"shopLens/domain"
	"shopLens/pkg/logger"
)

type SearchService interface {
	Search(ctx context.Context, req search.Request) (*domain.SearchResult, error)
}

type SearchHandler struct {
	searchService SearchService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewSearchHandler(searchService SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		validator:     validator.New(),
		// The pipeline waits on five sources plus image downloads, so the
		// handler budget is wider than the usual 10s.
		timeout: 45 * time.Second,
	}
}

type EnhancedSearchRequest struct {
	Query               string   `json:"query"`
	Image               string   `json:"image,omitempty"`
	TopK                int      `json:"top_k" validate:"omitempty,gte=1,lte=100"`
	TextWeight          float64  `json:"text_weight" validate:"gte=0,lte=1"`
	ImageWeight         float64  `json:"image_weight" validate:"gte=0,lte=1"`
	Sources             []string `json:"sources,omitempty"`
	EnableSentiment     *bool    `json:"enable_sentiment,omitempty"`
	EnableOccasion      *bool    `json:"enable_occasion,omitempty"`
	EnableRerank        *bool    `json:"enable_rerank,omitempty"`
	SentimentPreference string   `json:"sentiment_preference,omitempty"`
	Occasion            string   `json:"occasion,omitempty"`
	Mood                string   `json:"mood,omitempty"`
	Season              string   `json:"season,omitempty"`
	TimeOfDay           string   `json:"time_of_day,omitempty"`
	Weather             string   `json:"weather,omitempty"`
	Location            string   `json:"location,omitempty"`
	UseCache            *bool    `json:"use_cache,omitempty"`
}

// Search runs the enhanced product search. Sentiment, occasion scoring
// and caching default to on; reranking defaults to off.
func (h *SearchHandler) Search(c echo.Context) error {
	var req EnhancedSearchRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind search request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate search request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.searchService.Search(ctx, search.Request{
		Query:           req.Query,
		ImageBase64:     req.Image,
		TopK:            req.TopK,
		TextWeight:      req.TextWeight,
		ImageWeight:     req.ImageWeight,
		Sources:         req.Sources,
		EnableSentiment: boolOrDefault(req.EnableSentiment, true),
		EnableOccasion:  boolOrDefault(req.EnableOccasion, true),
		EnableRerank:    boolOrDefault(req.EnableRerank, false),
		SentimentPref:   req.SentimentPreference,
		Context: domain.ContextProfile{
			Occasion:  req.Occasion,
			Mood:      req.Mood,
			Season:    req.Season,
			TimeOfDay: req.TimeOfDay,
			Weather:   req.Weather,
			Location:  req.Location,
		},
		UseCache: boolOrDefault(req.UseCache, true),
	})
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}

		if errors.Is(err, search.ErrEncoderUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}

		logger.Error("Search failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}

	return *v
}
