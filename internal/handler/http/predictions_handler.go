package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
	"github.com/cypherlabdev/match-digest-bot/internal/service"
)

// DigestSender runs the pre-game digest responsibility
type DigestSender interface {
	SendPreGamePredictions(ctx context.Context)
}

// PredictionsHandler handles HTTP requests for predictions and digests
type PredictionsHandler struct {
	source service.PredictionSource
	sender DigestSender
	logger zerolog.Logger
}

// NewPredictionsHandler creates a new predictions HTTP handler
func NewPredictionsHandler(source service.PredictionSource, sender DigestSender, logger zerolog.Logger) *PredictionsHandler {
	return &PredictionsHandler{
		source: source,
		sender: sender,
		logger: logger.With().Str("component", "predictions_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *PredictionsHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/predictions - Preview today's predictions
	mux.HandleFunc("/api/v1/predictions", h.handleGetPredictions)

	// POST /api/v1/digests - Send the pre-game digest now
	mux.HandleFunc("/api/v1/digests", h.handleSendDigest)
}

// PredictionsResponse is the body of GET /api/v1/predictions
type PredictionsResponse struct {
	Predictions []models.MatchPrediction `json:"predictions"`
	Count       int                      `json:"count"`
	Recommended int                      `json:"recommended"`
}

// handleGetPredictions handles GET /api/v1/predictions
func (h *PredictionsHandler) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	predictions, err := h.source.GetTodayPredictions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get predictions")
		h.errorResponse(w, http.StatusBadGateway, "failed to get predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, ToPredictionsResponse(predictions))
}

// SendDigestRequest is the optional body of POST /api/v1/digests
type SendDigestRequest struct {
	ChatID int64 `json:"chat_id"` // Overrides the configured chat when set
}

// handleSendDigest handles POST /api/v1/digests
func (h *PredictionsHandler) handleSendDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req SendDigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if req.ChatID != 0 {
		ctx = service.WithChatID(ctx, req.ChatID)
		h.logger.Info().Int64("chat_id", req.ChatID).Msg("sending digest to requested chat")
	}

	// Failures are reported through the notifier, not the response
	h.sender.SendPreGamePredictions(ctx)

	h.jsonResponse(w, http.StatusAccepted, map[string]string{
		"status": "processed",
	})
}

// jsonResponse writes a JSON response
func (h *PredictionsHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PredictionsHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

// ToPredictionsResponse counts the predictions and how many are recommended
func ToPredictionsResponse(predictions []models.MatchPrediction) *PredictionsResponse {
	if predictions == nil {
		predictions = []models.MatchPrediction{}
	}

	recommended := 0
	for _, p := range predictions {
		if p.IsLikelyOver25() {
			recommended++
		}
	}

	return &PredictionsResponse{
		Predictions: predictions,
		Count:       len(predictions),
		Recommended: recommended,
	}
}
