package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
	logger  zerolog.Logger
}

func NewAnalyticsHandler(service ports.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: logger}
}

func (h *AnalyticsHandler) TotalClicks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	total, err := h.service.TotalClicks(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("total clicks failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"totalClicks": total})
}

func (h *AnalyticsHandler) OverallTotalClicks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "This action is not allowed")
		return
	}

	total, err := h.service.OverallTotalClicks(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("overall clicks failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"overallTotalClicks": total})
}

func (h *AnalyticsHandler) ClicksByDevice(w http.ResponseWriter, r *http.Request) {
	clicks, err := h.service.ClicksByDevice(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("devicewise clicks failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"clicks": clicks})
}

func (h *AnalyticsHandler) ClicksByDate(w http.ResponseWriter, r *http.Request) {
	clicks, err := h.service.ClicksByDate(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("datewise clicks failed")
		writeError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"clicks": clicks})
}
