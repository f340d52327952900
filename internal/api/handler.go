package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/kartoza/house-price-predictor/internal/config"
	"github.com/kartoza/house-price-predictor/internal/features"
	"github.com/kartoza/house-price-predictor/internal/history"
	"github.com/kartoza/house-price-predictor/internal/httputil"
	"github.com/kartoza/house-price-predictor/internal/models"
	"github.com/kartoza/house-price-predictor/internal/pipeline"
	"github.com/kartoza/house-price-predictor/internal/pricing"
)

// maxBodyBytes bounds the size of a prediction request
const maxBodyBytes = 1 << 20

// Handler provides HTTP API endpoints
type Handler struct {
	model   *pipeline.Pipeline
	history *history.Store
	cfg     config.Config
}

// NewHandler creates a new API handler. history may be nil.
func NewHandler(
	model *pipeline.Pipeline,
	historyStore *history.Store,
	cfg config.Config,
) *Handler {
	return &Handler{
		model:   model,
		history: historyStore,
		cfg:     cfg,
	}
}

// RegisterRoutes sets up all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Health and info
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/info", h.handleInfo).Methods("GET")

	// Prediction
	r.HandleFunc("/features", h.handleFeatures).Methods("GET")
	r.HandleFunc("/predict", h.handlePredict).Methods("POST")

	// Model introspection and history
	r.HandleFunc("/api/model", h.handleModelInfo).Methods("GET")
	r.HandleFunc("/api/predictions", h.handleListPredictions).Methods("GET")
}

// handleHealth returns server health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo returns server information
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := models.InfoResponse{
		Version:        h.cfg.Version,
		ModelLoaded:    h.model != nil,
		ModelPath:      h.cfg.ResolvedModelPath(),
		HistoryEnabled: h.history != nil,
	}
	if h.model != nil {
		info.FeatureCount = len(h.model.Features)
	}
	if st, err := os.Stat(info.ModelPath); err == nil {
		info.ModelSize = humanize.Bytes(uint64(st.Size()))
	}
	httputil.RespondJSON(w, http.StatusOK, info)
}

// handleFeatures returns the required features with descriptions and ranges
func (h *Handler) handleFeatures(w http.ResponseWriter, r *http.Request) {
	names := features.Names()
	if h.model != nil {
		names = h.model.Features
	}
	httputil.RespondJSON(w, http.StatusOK, models.FeaturesResponse{
		Features:     names,
		Descriptions: features.Descriptions(names),
		Ranges:       features.Ranges(names),
	})
}

// handlePredict validates the request, runs the pipeline and formats the price.
// A missing feature is a 400; every other failure is a 500.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	resp, vector, err := h.predict(r)
	if err != nil {
		var missing *features.MissingError
		if errors.As(err, &missing) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.record(r, vector, resp)
	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) predict(r *http.Request) (models.PredictResponse, []float64, error) {
	if h.model == nil {
		return models.PredictResponse{}, nil, errors.New("model not loaded")
	}

	if ct := r.Header.Get("Content-Type"); !isJSON(ct) {
		return models.PredictResponse{}, nil, fmt.Errorf("unsupported Content-Type %q, expected application/json", ct)
	}

	var data map[string]interface{}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&data); err != nil {
		return models.PredictResponse{}, nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return models.PredictResponse{}, nil, errors.New("invalid JSON body: unexpected data after JSON value")
	}
	if data == nil {
		return models.PredictResponse{}, nil, errors.New("request body must be a JSON object")
	}

	vector, err := features.Vector(data, h.model.Features)
	if err != nil {
		return models.PredictResponse{}, nil, err
	}

	prediction, err := h.model.Predict(vector)
	if err != nil {
		return models.PredictResponse{}, nil, err
	}
	if !finite(prediction) {
		return models.PredictResponse{}, nil, fmt.Errorf("prediction is not a finite number: %v", prediction)
	}

	return models.PredictResponse{
		PredictedPrice:          pricing.Round(prediction),
		PredictedPriceFormatted: pricing.Format(prediction),
	}, vector, nil
}

// record logs a successful prediction. Failures are logged, never returned.
func (h *Handler) record(r *http.Request, vector []float64, resp models.PredictResponse) {
	if h.history == nil {
		return
	}

	values := make(map[string]float64, len(vector))
	for i, name := range h.model.Features {
		values[name] = vector[i]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := h.history.Add(ctx, &history.Record{
		Features:       values,
		PredictedPrice: resp.PredictedPrice,
		Formatted:      resp.PredictedPriceFormatted,
		RemoteAddr:     r.RemoteAddr,
	})
	if err != nil {
		log.Printf("Warning: could not record prediction: %v", err)
	}
}

// handleModelInfo returns coefficients, importance and training metrics
func (h *Handler) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if h.model == nil {
		httputil.RespondError(w, http.StatusNotFound, "model not loaded")
		return
	}

	info := models.ModelInfoResponse{
		Features:     h.model.Features,
		Intercept:    h.model.Regressor.Intercept,
		Coefficients: h.model.Coefficients(),
		Importance:   h.model.Importance(),
		Samples:      h.model.Samples,
	}
	if m := h.model.Metrics; m != (pipeline.Metrics{}) && finite(m.R2, m.RMSE, m.MAE) {
		info.Metrics = &m
	}
	if !h.model.TrainedAt.IsZero() {
		trainedAt := h.model.TrainedAt
		info.TrainedAt = &trainedAt
	}
	httputil.RespondJSON(w, http.StatusOK, info)
}

// handleListPredictions returns the most recent logged predictions
func (h *Handler) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		httputil.RespondError(w, http.StatusNotFound, "prediction history is disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := h.history.Count(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PredictionsResponse{
		Predictions: records,
		Total:       total,
	})
}

// isJSON accepts application/json and application/*+json media types
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" ||
		(strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// finite reports whether every value can be encoded as a JSON number
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
