package models

import (
	"time"

	"github.com/kartoza/house-price-predictor/internal/features"
	"github.com/kartoza/house-price-predictor/internal/history"
	"github.com/kartoza/house-price-predictor/internal/pipeline"
)

// PredictResponse is returned by POST /predict
type PredictResponse struct {
	PredictedPrice          float64 `json:"predicted_price"`
	PredictedPriceFormatted string  `json:"predicted_price_formatted"`
}

// FeaturesResponse lists the required features with descriptions and ranges
type FeaturesResponse struct {
	Features     []string                  `json:"features"`
	Descriptions map[string]string         `json:"descriptions"`
	Ranges       map[string]features.Range `json:"ranges"`
}

// ModelInfoResponse describes the loaded pipeline
type ModelInfoResponse struct {
	Features     []string                 `json:"features"`
	Intercept    float64                  `json:"intercept"`
	Coefficients map[string]float64       `json:"coefficients"`
	Importance   []pipeline.FeatureWeight `json:"importance"`
	Samples      int                      `json:"samples"`
	Metrics      *pipeline.Metrics        `json:"metrics,omitempty"`
	TrainedAt    *time.Time               `json:"trained_at,omitempty"`
}

// InfoResponse is returned by GET /info
type InfoResponse struct {
	Version        string `json:"version"`
	ModelLoaded    bool   `json:"model_loaded"`
	ModelPath      string `json:"model_path"`
	ModelSize      string `json:"model_size,omitempty"`
	FeatureCount   int    `json:"feature_count"`
	HistoryEnabled bool   `json:"history_enabled"`
}

// PredictionsResponse is returned by GET /api/predictions
type PredictionsResponse struct {
	Predictions []history.Record `json:"predictions"`
	Total       int              `json:"total"`
}
